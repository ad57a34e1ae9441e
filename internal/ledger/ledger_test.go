package ledger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitpay/internal/storage"
	"github.com/mmynk/splitpay/internal/storage/sqlite"
)

// fixedClock pins expense timestamps for assertions.
type fixedClock struct {
	now int64
}

func (c *fixedClock) Now() int64 { return c.now }

// engine bundles the four components over one temp store.
type engine struct {
	store    storage.Store
	registry *Registry
	ledger   *Ledger
	settler  *Settler
	query    *Query
	clock    *fixedClock
}

func newTestEngine(t *testing.T) *engine {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	clock := &fixedClock{now: 1700000000}
	return &engine{
		store:    store,
		registry: NewRegistry(store),
		ledger:   NewLedger(store, clock),
		settler:  NewSettler(store),
		query:    NewQuery(store),
		clock:    clock,
	}
}
