package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItem_AppendsInOrder(t *testing.T) {
	s := openStore(t)

	first, err := s.CreateItem("A", "d", "u", "", "")
	require.NoError(t, err)
	second, err := s.CreateItem("B", "d", "u", "/uploads/images/x.png", "")
	require.NoError(t, err)

	items := s.ListItems()
	require.Len(t, items, 2)
	assert.Equal(t, first, items[0])
	assert.Equal(t, second, items[1])
}

func TestCreateItem_NoFiles(t *testing.T) {
	s := openStore(t)

	item, err := s.CreateItem("A", "d", "u", "", "")
	require.NoError(t, err)
	assert.Empty(t, item.Image)
	assert.Empty(t, item.Source)
}

func TestDeleteItem_RemovesExactlyOne(t *testing.T) {
	s := openStore(t)

	first, err := s.CreateItem("A", "d", "u", "", "")
	require.NoError(t, err)
	second, err := s.CreateItem("B", "d", "u", "", "")
	require.NoError(t, err)
	third, err := s.CreateItem("C", "d", "u", "", "")
	require.NoError(t, err)

	removed, err := s.DeleteItem(second.ID)
	require.NoError(t, err)
	assert.Equal(t, second, removed)
	assert.Equal(t, []Item{first, third}, s.ListItems())
}

func TestDeleteItem_UnknownID(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	item, err := s.CreateItem("A", "d", "u", "", "")
	require.NoError(t, err)

	before, err := os.ReadFile(filepath.Join(dir, "data.json"))
	require.NoError(t, err)

	_, err = s.DeleteItem(item.ID + 1)
	assert.ErrorIs(t, err, ErrNotFound)

	after, err := os.ReadFile(filepath.Join(dir, "data.json"))
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed delete must not touch the collection file")
	assert.Equal(t, []Item{item}, s.ListItems())
}

func TestDeleteItem_SecondDeleteFails(t *testing.T) {
	s := openStore(t)

	item, err := s.CreateItem("A", "d", "u", "", "")
	require.NoError(t, err)

	_, err = s.DeleteItem(item.ID)
	require.NoError(t, err)
	_, err = s.DeleteItem(item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteItem_LastItemLeavesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	item, err := s.CreateItem("A", "d", "u", "", "")
	require.NoError(t, err)
	_, err = s.DeleteItem(item.ID)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "data.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	assert.Empty(t, s.ListItems())
}
