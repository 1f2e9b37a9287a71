package docstore

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Store:
// - Open/Get/Change/Close lifecycle
// - Change on an unopened document fails
// - Symbols extracts the outline of the current version
// - Repeated Symbols calls for one version return the cached tree
// - A version bump produces a fresh outline
// - Concurrent readers are safe

const userTestSource = `
class UserTest < ActiveSupport::TestCase
  test "an example" do
  end
end
`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(nil)
	require.NoError(t, err)
	t.Cleanup(store.Shutdown)
	return store
}

func TestStore_Lifecycle(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	uri := "file:///test/user_test.rb"

	store.Open(uri, "ruby", 1, userTestSource)
	assert.Equal(t, 1, store.Len())

	doc, ok := store.Get(uri)
	require.True(t, ok)
	assert.Equal(t, int32(1), doc.Version)
	assert.Equal(t, "ruby", doc.LanguageID)

	require.NoError(t, store.Change(uri, 2, "class Other\nend\n"))
	doc, ok = store.Get(uri)
	require.True(t, ok)
	assert.Equal(t, int32(2), doc.Version)

	store.Close(uri)
	_, ok = store.Get(uri)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStore_ChangeUnopened(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	assert.Error(t, store.Change("file:///missing.rb", 1, ""))
}

func TestStore_Symbols(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	uri := "file:///test/user_test.rb"
	store.Open(uri, "ruby", 1, userTestSource)

	symbols, err := store.Symbols(uri)
	require.NoError(t, err)
	require.Len(t, symbols, 1)
	assert.Equal(t, "UserTest", symbols[0].Name)
	require.Len(t, symbols[0].Children, 1)
	assert.Equal(t, "an example", symbols[0].Children[0].Name)

	_, err = store.Symbols("file:///missing.rb")
	assert.Error(t, err)
}

func TestStore_SymbolsCachedPerVersion(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	uri := "file:///test/user_test.rb"
	store.Open(uri, "ruby", 1, userTestSource)

	first, err := store.Symbols(uri)
	require.NoError(t, err)
	again, err := store.Symbols(uri)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%p", first), fmt.Sprintf("%p", again),
		"same version should return the cached tree")

	require.NoError(t, store.Change(uri, 2, "class Renamed\nend\n"))
	fresh, err := store.Symbols(uri)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "Renamed", fresh[0].Name)
}

func TestStore_ConcurrentReaders(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	uri := "file:///test/user_test.rb"
	store.Open(uri, "ruby", 1, userTestSource)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			symbols, err := store.Symbols(uri)
			assert.NoError(t, err)
			assert.Len(t, symbols, 1)
		}()
	}
	wg.Wait()
}
