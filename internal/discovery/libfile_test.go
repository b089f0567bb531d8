package discovery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLibraryList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "comments are skipped",
			input:    "foo\n# bar\nbaz\n",
			expected: []string{"foo", "baz"},
		},
		{
			name:     "trailing whitespace is stripped",
			input:    "hashmap  \r\nlinkedlist\t\n",
			expected: []string{"hashmap", "linkedlist"},
		},
		{
			name:     "blank lines are ignored",
			input:    "\nparser\n\n   \n",
			expected: []string{"parser"},
		},
		{
			name:     "no trailing newline",
			input:    "a\nb",
			expected: []string{"a", "b"},
		},
		{
			name:     "only comments",
			input:    "# one\n#two\n",
			expected: nil,
		},
		{
			name:     "indented comment is skipped",
			input:    "  # disabled\n\t#lib\n",
			expected: nil,
		},
		{
			name:     "leading whitespace is stripped",
			input:    " foo\n\tbar\n",
			expected: []string{"foo", "bar"},
		},
		{
			name:     "vertical tab and form feed are stripped",
			input:    "bar\v\n\fbaz\f\n",
			expected: []string{"bar", "baz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, err := ReadLibraryList(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestLoadLibraryList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "libs.txt")
	require.NoError(t, os.WriteFile(path, []byte("hashmap\n# parser\nlinkedlist\n"), 0644))

	t.Run("reads file in order", func(t *testing.T) {
		names, err := LoadLibraryList(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"hashmap", "linkedlist"}, names)
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		_, err := LoadLibraryList(filepath.Join(dir, "missing.txt"))
		assert.Error(t, err)
	})
}
