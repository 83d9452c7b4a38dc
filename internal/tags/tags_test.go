package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	got, err := Add(nil, "  React ")
	require.NoError(t, err)
	assert.Equal(t, []string{"react"}, got)

	_, err = Add(got, "REACT")
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = Add(got, "   ")
	assert.ErrorIs(t, err, ErrEmptyTag)

	full := []string{"a", "b", "c", "d", "e"}
	_, err = Add(full, "f")
	assert.ErrorIs(t, err, ErrTooMany)
}

func TestAddDoesNotAlias(t *testing.T) {
	base := make([]string, 1, 10)
	base[0] = "go"

	a, err := Add(base, "sql")
	require.NoError(t, err)
	b, err := Add(base, "http")
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "sql"}, a)
	assert.Equal(t, []string{"go", "http"}, b)
}

func TestRemove(t *testing.T) {
	current := []string{"react", "typescript", "auth"}

	got, err := Remove(current, "TypeScript")
	require.NoError(t, err)
	assert.Equal(t, []string{"react", "auth"}, got)
	assert.Len(t, current, 3)

	_, err = Remove(current, "vue")
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestNormalize(t *testing.T) {
	got, err := Normalize([]string{"Go", "", "go", " SQL ", "http"})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql", "http"}, got)

	_, err = Normalize([]string{"", "  "})
	assert.ErrorIs(t, err, ErrNoTags)

	_, err = Normalize([]string{"a", "b", "c", "d", "e", "f"})
	assert.ErrorIs(t, err, ErrTooMany)

	_, err = Normalize(Split("one,two, ,three"))
	assert.NoError(t, err)
}
