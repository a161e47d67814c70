// Package search 将自由文本搜索词转换为跨多列的模糊匹配SQL片段。
// 搜索词中的%、_、\按字面匹配，不作为通配符。
package search

import (
	"strings"
)

// Filter 多列子串搜索过滤器
type Filter struct {
	term    string
	columns []string
}

// New 创建搜索过滤器。term为空时不产生任何条件。
func New(term string, columns []string) *Filter {
	return &Filter{term: term, columns: columns}
}

// Clause 返回形如"(LOWER(a) LIKE ? ESCAPE '\\' OR ...)"的OR条件组
// 及各列对应的绑定参数。由调用方用AND拼接到其他条件上。
// term为空时返回空串和nil。
func (f *Filter) Clause() (string, []any) {
	if f == nil || f.term == "" {
		return "", nil
	}

	pattern := "%" + escapeTerm(f.term) + "%"

	conds := make([]string, 0, len(f.columns))
	args := make([]any, 0, len(f.columns))
	for _, col := range f.columns {
		conds = append(conds, "LOWER("+col+`) LIKE LOWER(?) ESCAPE '\\'`)
		args = append(args, pattern)
	}

	return "(" + strings.Join(conds, " OR ") + ")", args
}

// escapeTerm 转义LIKE通配符，使搜索词按字面匹配
func escapeTerm(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
