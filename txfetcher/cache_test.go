package txfetcher

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/huynhtastic/programmingbitcoin/chaincfg"
	"github.com/huynhtastic/programmingbitcoin/wire"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()

	key := CacheKey{Net: wire.MainNet, TxID: p2pkhTxID}
	_, found, err := cache.Get(key)
	require.NoError(t, err)
	require.False(t, found)

	raw := []byte{1, 2, 3}
	require.NoError(t, cache.Put(key, raw))
	raw[0] = 9

	got, found, err := cache.Get(key)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte{1, 2, 3}, got)
	require.Equal(t, 1, cache.Len())

	_, found, err = cache.Get(CacheKey{Net: wire.TestNet3, TxID: p2pkhTxID})
	require.NoError(t, err)
	require.False(t, found)

	// Closing twice is harmless.
	require.NoError(t, cache.Close())
}

func TestMemoryCacheExpires(t *testing.T) {
	cache := NewMemoryCache(20 * time.Millisecond)
	defer cache.Close()

	key := CacheKey{Net: wire.MainNet, TxID: p2pkhTxID}
	require.NoError(t, cache.Put(key, []byte{1}))
	require.Eventually(t, func() bool {
		_, found, _ := cache.Get(key)
		return !found
	}, time.Second, 10*time.Millisecond)
}

func TestLevelDBCache(t *testing.T) {
	path := t.TempDir()
	cache, err := NewLevelDBCache(path)
	require.NoError(t, err)

	key := CacheKey{Net: wire.TestNet3, TxID: p2pkhTxID}
	_, found, err := cache.Get(key)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, cache.Put(key, []byte("raw transaction")))
	got, found, err := cache.Get(key)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("raw transaction"), got)

	_, found, err = cache.Get(CacheKey{Net: wire.MainNet, TxID: p2pkhTxID})
	require.NoError(t, err)
	require.False(t, found)

	_, _, err = cache.Get(CacheKey{Net: wire.MainNet, TxID: "not an id"})
	require.Error(t, err)

	// Entries survive reopening.
	require.NoError(t, cache.Close())
	cache, err = NewLevelDBCache(path)
	require.NoError(t, err)
	defer cache.Close()

	got, found, err = cache.Get(key)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("raw transaction"), got)
}

func TestFetchWithLevelDBCache(t *testing.T) {
	path := t.TempDir()
	params := &chaincfg.MainNetParams
	url := txURL(params, p2pkhTxID)

	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodGet, url, httpmock.NewStringResponder(http.StatusOK, p2pkhTxHex))

	cache, err := NewLevelDBCache(path)
	require.NoError(t, err)
	_, err = New(&http.Client{Transport: transport}, cache).Fetch(context.Background(), p2pkhTxID, params, false)
	require.NoError(t, err)
	require.NoError(t, cache.Close())

	// A new fetcher over the same database does not need the network.
	cache, err = NewLevelDBCache(path)
	require.NoError(t, err)
	defer cache.Close()
	tx, err := New(&http.Client{Transport: transport}, cache).Fetch(context.Background(), p2pkhTxID, params, false)
	require.NoError(t, err)
	require.Equal(t, p2pkhTxID, tx.TxID())
	require.Equal(t, 1, transport.GetTotalCallCount())
}
