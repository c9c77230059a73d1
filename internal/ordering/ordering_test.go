package ordering_test

import (
	"testing"

	"tickr/internal/ordering"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, ordering.ClampWithin(-3, 4))
	assert.Equal(t, 3, ordering.ClampWithin(10, 4))
	assert.Equal(t, 2, ordering.ClampWithin(2, 4))
	assert.Equal(t, 0, ordering.ClampWithin(5, 0))

	assert.Equal(t, 4, ordering.ClampInto(10, 4))
	assert.Equal(t, 0, ordering.ClampInto(-1, 0))
	assert.Equal(t, 0, ordering.ClampInto(3, 0))
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		id   string
		to   int
		want []string
	}{
		{"move first to last", []string{"a", "b", "c"}, "a", 2, []string{"b", "c", "a"}},
		{"move last to first", []string{"a", "b", "c"}, "c", 0, []string{"c", "a", "b"}},
		{"same index", []string{"a", "b", "c"}, "b", 1, []string{"a", "b", "c"}},
		{"index past end is clamped", []string{"a", "b", "c"}, "a", 99, []string{"b", "c", "a"}},
		{"negative index is clamped", []string{"a", "b", "c"}, "c", -5, []string{"c", "a", "b"}},
		{"unknown id", []string{"a", "b"}, "z", 0, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ordering.Reorder(tt.ids, tt.id, tt.to))
		})
	}
}

func TestMoveAcross(t *testing.T) {
	src, dst := ordering.MoveAcross([]string{"a", "b"}, []string{"x", "y"}, "a", 1)
	assert.Equal(t, []string{"b"}, src)
	assert.Equal(t, []string{"x", "a", "y"}, dst)

	// destination bound is its pre-insertion length
	src, dst = ordering.MoveAcross([]string{"a"}, []string{"x", "y"}, "a", 50)
	assert.Empty(t, src)
	assert.Equal(t, []string{"x", "y", "a"}, dst)

	src, dst = ordering.MoveAcross([]string{"a"}, nil, "a", 0)
	assert.Empty(t, src)
	assert.Equal(t, []string{"a"}, dst)
}

func TestInsertDoesNotAliasInput(t *testing.T) {
	base := make([]int, 2, 10)
	base[0], base[1] = 1, 2
	out := ordering.Insert(base, 9, 1)
	assert.Equal(t, []int{1, 9, 2}, out)
	assert.Equal(t, []int{1, 2}, base)
}

func TestContiguous(t *testing.T) {
	assert.True(t, ordering.Contiguous(nil))
	assert.True(t, ordering.Contiguous([]int{2, 0, 1}))
	assert.False(t, ordering.Contiguous([]int{0, 2}))
	assert.False(t, ordering.Contiguous([]int{0, 0}))
}
