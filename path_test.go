package gridpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	g := mustGrid(t, 3, 3, Cell{1, 1})

	tests := []struct {
		name string
		path Path
		want bool
	}{
		{"empty", nil, true},
		{"single cell", Path{{0, 0}}, true},
		{"around obstacle", Path{{0, 0}, {0, 1}, {0, 2}, {1, 2}}, true},
		{"through obstacle", Path{{0, 1}, {1, 1}, {2, 1}}, false},
		{"off grid", Path{{0, 2}, {0, 3}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.path, g))
		})
	}
}

func TestValidate_DetectsGridMutatedAfterSearch(t *testing.T) {
	g := mustGrid(t, 3, 3)
	path := FindPath(g, Cell{0, 0}, Cell{2, 2})
	assert.True(t, Validate(path, g))

	assert.NoError(t, g.SetBlocked(path[2]))
	assert.False(t, Validate(path, g))
	err := CheckPath(path, g)
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.NotErrorIs(t, err, ErrOutOfBounds)

	err = CheckPath(Path{{0, 0}, {-1, 0}}, g)
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestPath_Helpers(t *testing.T) {
	var empty Path
	assert.True(t, empty.Empty())
	assert.Zero(t, empty.Steps())
	assert.True(t, empty.IsContiguous())

	p := Path{{0, 0}, {0, 1}, {1, 1}}
	assert.False(t, p.Empty())
	assert.Equal(t, 2, p.Steps())
	assert.True(t, p.IsContiguous())

	assert.False(t, Path{{0, 0}, {1, 1}}.IsContiguous(), "diagonal")
	assert.False(t, Path{{0, 0}, {0, 0}}.IsContiguous(), "repeat")
	assert.False(t, Path{{0, 0}, {0, 2}}.IsContiguous(), "jump")
}
