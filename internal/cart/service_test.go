package cart

import (
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parfumerie-dz/storefront/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewService(storage.NewFileStore(t.TempDir(), logger))
}

func Test_CartService_PersistsAcrossLoads(t *testing.T) {
	// given
	svc := newTestService(t)
	p := product("Sauvage", 45000)
	// when
	_, err := svc.Add("session-1", p)
	require.NoError(t, err)
	_, err = svc.Add("session-1", p)
	require.NoError(t, err)
	// then a fresh read sees the stored cart
	c := svc.Get("session-1")
	require.Len(t, c.Items, 1)
	assert.Equal(t, int32(2), c.Items[0].Quantity)
	assert.Equal(t, int64(90000), c.Subtotal())
}

func Test_CartService_SessionsAreIsolated(t *testing.T) {
	// given
	svc := newTestService(t)
	_, err := svc.Add("session-1", product("Sauvage", 45000))
	require.NoError(t, err)
	// when
	other := svc.Get("session-2")
	// then
	assert.Empty(t, other.Items)
}

func Test_CartService_ClearEmptiesTheSlot(t *testing.T) {
	// given
	svc := newTestService(t)
	_, err := svc.Add("session-1", product("Sauvage", 45000))
	require.NoError(t, err)
	// when
	require.NoError(t, svc.Clear("session-1"))
	// then
	assert.Empty(t, svc.Get("session-1").Items)
	// and clearing an already-empty cart is fine
	require.NoError(t, svc.Clear("session-1"))
}

func Test_CartService_SetQuantityZeroRemoves(t *testing.T) {
	// given
	svc := newTestService(t)
	p := product("Sauvage", 45000)
	_, err := svc.Add("session-1", p)
	require.NoError(t, err)
	// when
	c, err := svc.SetQuantity("session-1", p.ID, 0)
	require.NoError(t, err)
	// then
	assert.Empty(t, c.Items)
	assert.Empty(t, svc.Get("session-1").Items)
}

func Test_CartService_ConcurrentAddsSameSession(t *testing.T) {
	// given
	svc := newTestService(t)
	p := product("Sauvage", 45000)
	// when 20 requests add the same product concurrently
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Add("session-1", p)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	// then no update is lost
	c := svc.Get("session-1")
	require.Len(t, c.Items, 1)
	assert.Equal(t, int32(20), c.Items[0].Quantity)
}

func Test_CartService_UnknownProductRemoveIsNoop(t *testing.T) {
	// given
	svc := newTestService(t)
	_, err := svc.Add("session-1", product("Sauvage", 45000))
	require.NoError(t, err)
	// when
	c, err := svc.Remove("session-1", uuid.New())
	require.NoError(t, err)
	// then
	assert.Len(t, c.Items, 1)
}
