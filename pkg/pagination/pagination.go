// Package pagination 实现偏移分页：多取一行探测是否还有更多数据，
// 只向查询贡献LIMIT/OFFSET片段，可与任意过滤条件组合。
package pagination

import (
	"orbitex/pkg/apperror"
)

// Offset 一次请求的偏移分页状态
type Offset struct {
	Offset int
	Limit  int
	More   bool // 迭代完成后为true表示超出limit仍有数据

	seen int
}

// New 创建偏移分页。offset、limit为nil时使用默认值，
// limit超过max时收紧到max，负值返回VALIDATION_ERROR。
func New(defaultLimit, maxLimit int, offset, limit *int) (*Offset, error) {
	p := &Offset{Limit: defaultLimit}

	if offset != nil {
		if *offset < 0 {
			return nil, apperror.Validation("offset")
		}
		p.Offset = *offset
	}

	if limit != nil {
		if *limit < 0 {
			return nil, apperror.Validation("limit")
		}
		p.Limit = *limit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}

	return p, nil
}

// Clause 返回LIMIT/OFFSET片段及绑定参数，比请求多取一行
func (p *Offset) Clause() (string, []any) {
	return " LIMIT ? OFFSET ?", []any{p.Limit + 1, p.Offset}
}

// Iter 在逐行读取结果时调用。返回true表示读到了多取的那一行，
// 该行应被丢弃并停止读取，此时More被置位。
func (p *Offset) Iter() bool {
	p.seen++
	if p.seen > p.Limit {
		p.More = true
		return true
	}
	return false
}
