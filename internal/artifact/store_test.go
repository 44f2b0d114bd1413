package artifact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreSymbolLifecycle(t *testing.T) {
	s := NewStore()
	key := Key{Lib: "analog", Cell: "nand2"}

	_, err := s.Symbol(key)
	require.ErrorIs(t, err, ErrNotFound)

	s.PutSymbol(key, []byte("<doc v1>"))
	a, err := s.Symbol(key)
	require.NoError(t, err)
	require.Equal(t, KindSymbol, a.Kind)
	require.Equal(t, key, a.Key)
	require.Equal(t, "<doc v1>", string(a.Content))

	s.PutSymbol(key, []byte("<doc v2>"))
	a, err = s.Symbol(key)
	require.NoError(t, err)
	require.Equal(t, "<doc v2>", string(a.Content))
}

func TestStoreSchematicLifecycle(t *testing.T) {
	s := NewStore()
	require.False(t, s.HasSchematic())
	_, err := s.Schematic()
	require.ErrorIs(t, err, ErrNotFound)

	s.PutSchematic([]byte("<top>"))
	require.True(t, s.HasSchematic())
	a, err := s.Schematic()
	require.NoError(t, err)
	require.Equal(t, KindSchematic, a.Kind)
	require.Equal(t, "<top>", string(a.Content))
}

func TestListSymbols(t *testing.T) {
	s := NewStore()
	require.Empty(t, s.ListSymbols())

	s.PutSymbol(Key{Lib: "a", Cell: "x"}, []byte("1"))
	s.PutSymbol(Key{Lib: "a", Cell: "y"}, []byte("2"))
	s.PutSymbol(Key{Lib: "b", Cell: "x"}, []byte("3"))

	keys := s.ListSymbols()
	require.Len(t, keys, 3)
	require.ElementsMatch(t, []Key{
		{Lib: "a", Cell: "x"}, {Lib: "a", Cell: "y"}, {Lib: "b", Cell: "x"},
	}, keys)
}

func TestClearAll(t *testing.T) {
	s := NewStore()
	s.PutSymbol(Key{Lib: "a", Cell: "x"}, []byte("1"))
	s.PutSchematic([]byte("top"))

	s.ClearAll()
	require.Empty(t, s.ListSymbols())
	require.False(t, s.HasSchematic())
}

func TestReplaceAllSwapsWholesale(t *testing.T) {
	s := NewStore()
	s.PutSymbol(Key{Lib: "old", Cell: "gone"}, []byte("1"))
	s.PutSchematic([]byte("old top"))

	s.ReplaceAll([]byte("new top"), map[Key][]byte{
		{Lib: "new", Cell: "one"}: []byte("n1"),
	})

	_, err := s.Symbol(Key{Lib: "old", Cell: "gone"})
	require.ErrorIs(t, err, ErrNotFound)
	a, err := s.Symbol(Key{Lib: "new", Cell: "one"})
	require.NoError(t, err)
	require.Equal(t, "n1", string(a.Content))
	top, err := s.Schematic()
	require.NoError(t, err)
	require.Equal(t, "new top", string(top.Content))
}

func TestReplaceAllWithoutSchematic(t *testing.T) {
	s := NewStore()
	s.PutSchematic([]byte("old top"))
	s.ReplaceAll(nil, map[Key][]byte{{Lib: "l", Cell: "c"}: []byte("x")})
	require.False(t, s.HasSchematic())
	require.Len(t, s.ListSymbols(), 1)
}

func TestReturnedArtifactsAreCopies(t *testing.T) {
	s := NewStore()
	key := Key{Lib: "a", Cell: "x"}
	s.PutSymbol(key, []byte("immutable"))

	a, err := s.Symbol(key)
	require.NoError(t, err)
	a.Content[0] = 'X'

	again, err := s.Symbol(key)
	require.NoError(t, err)
	require.Equal(t, "immutable", string(again.Content))
}
