package store

import (
	"path/filepath"
	"testing"

	"github.com/oxhq/protoir/ir"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveLoadDiff(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "snapshots.db")
	s, err := Open(dsn)
	require.NoError(t, err)
	defer s.Close()

	p1 := &ir.Protocol{GameVersion: "1.20.1", ProtocolNumber: 765}
	p2 := &ir.Protocol{GameVersion: "1.20.2", ProtocolNumber: 766}

	require.NoError(t, s.Save(p1))
	require.NoError(t, s.Save(p2))

	body, err := s.Load("1.20.1/765")
	require.NoError(t, err)
	require.Contains(t, string(body), "765")

	diff, err := s.Diff("1.20.1/765", "1.20.2/766")
	require.NoError(t, err)
	require.Contains(t, diff, "765")
	require.Contains(t, diff, "766")
}

func TestSplitVersionKey(t *testing.T) {
	gv, pn, ok := splitVersionKey("1.20.1/765")
	require.True(t, ok)
	require.Equal(t, "1.20.1", gv)
	require.Equal(t, 765, pn)

	gv2, _, ok2 := splitVersionKey("1.20.1")
	require.False(t, ok2)
	require.Equal(t, "1.20.1", gv2)
}
