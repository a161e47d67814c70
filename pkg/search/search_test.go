package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClause(t *testing.T) {
	t.Run("empty term produces nothing", func(t *testing.T) {
		clause, args := New("", []string{"title", "body"}).Clause()
		assert.Empty(t, clause)
		assert.Nil(t, args)
	})

	t.Run("nil filter produces nothing", func(t *testing.T) {
		var f *Filter
		clause, args := f.Clause()
		assert.Empty(t, clause)
		assert.Nil(t, args)
	})

	t.Run("single column", func(t *testing.T) {
		clause, args := New("hello", []string{"title"}).Clause()
		assert.Equal(t, `(LOWER(title) LIKE LOWER(?) ESCAPE '\\')`, clause)
		assert.Equal(t, []any{"%hello%"}, args)
	})

	t.Run("multiple columns joined with OR", func(t *testing.T) {
		clause, args := New("abc", []string{"path", "title", "excerpt"}).Clause()
		assert.Equal(t,
			`(LOWER(path) LIKE LOWER(?) ESCAPE '\\' OR LOWER(title) LIKE LOWER(?) ESCAPE '\\' OR LOWER(excerpt) LIKE LOWER(?) ESCAPE '\\')`,
			clause)
		assert.Equal(t, []any{"%abc%", "%abc%", "%abc%"}, args)
	})
}

func TestEscapeTerm(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{"percent", "50%", `%50\%%`},
		{"underscore", "a_b", `%a\_b%`},
		{"backslash", `a\b`, `%a\\b%`},
		{"all wildcards", `%_\`, `%\%\_\\%`},
		{"plain term untouched", "hello", "%hello%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, args := New(tt.term, []string{"title"}).Clause()
			assert.Equal(t, []any{tt.want}, args)
		})
	}
}
