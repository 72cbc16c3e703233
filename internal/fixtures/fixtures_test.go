package fixtures

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGlob(t *testing.T) {
	paths, err := Glob("testdata", "*.html")
	require.NoError(t, err)
	require.Len(t, paths, 1)
	require.Contains(t, paths[0], "keep_alive.html")
}

func TestLoadHTML(t *testing.T) {
	doc, err := LoadHTML("testdata/keep_alive.html")
	require.NoError(t, err)
	require.NotNil(t, doc)
}

func TestLoadAll(t *testing.T) {
	docs, err := LoadAll("testdata", "*.html")
	require.NoError(t, err)
	require.Len(t, docs, 1)
}
