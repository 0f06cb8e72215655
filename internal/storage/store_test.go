package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PutGetOverwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	key := ContractKey(7)
	ok, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, key, []byte("first version, longer")))
	require.NoError(t, store.Put(ctx, key, []byte("second")))

	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := store.Stat(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(6), info.Size)
	assert.False(t, info.ModTime.IsZero())

	ok, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	entries, err := os.ReadDir(filepath.Dir(store.Path(key)))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestFileStore_NotFound(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), TenantSignatureKey(3))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Stat(context.Background(), LandlordSignatureKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_RejectsEscapingKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../etc/passwd", "a/../../b", "/abs/path"} {
		err := store.Put(context.Background(), key, []byte("x"))
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "contracts/contract_12.pdf", ContractKey(12))
	assert.Equal(t, "signatures/tenant_12.png", TenantSignatureKey(12))
	assert.Equal(t, "receipts/receipt_12.pdf", ReceiptKey(12))
}
