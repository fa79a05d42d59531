package snapshot

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store, err := NewStore(DriverMemory)
	require.NoError(t, err)
	defer store.Close()

	ctx := t.Context()
	key := gofakeit.UUID()
	in := testRecord{Name: gofakeit.Name(), Count: 3}

	require.NoError(t, store.Save(ctx, key, in))

	var out testRecord
	require.NoError(t, store.Load(ctx, key, &out))
	assert.Equal(t, in, out)
}

func TestMemoryStore_LoadMissing(t *testing.T) {
	store, err := NewStore(DriverMemory)
	require.NoError(t, err)
	defer store.Close()

	var out testRecord
	err = store.Load(t.Context(), "absent", &out)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_CorruptRecordTreatedAsAbsent(t *testing.T) {
	store := newMemoryStore("")
	store.records["cart:alice"] = []byte("{not valid json")

	var out testRecord
	err := store.Load(t.Context(), "cart:alice", &out)
	require.ErrorIs(t, err, ErrNotFound)

	// The caller falls back to its initial state and keeps going; the
	// next save replaces the bad record.
	require.NoError(t, store.Save(t.Context(), "cart:alice", testRecord{Name: "fresh"}))
	require.NoError(t, store.Load(t.Context(), "cart:alice", &out))
	assert.Equal(t, "fresh", out.Name)
}

func TestMemoryStore_Delete(t *testing.T) {
	store, err := NewStore(DriverMemory)
	require.NoError(t, err)
	defer store.Close()

	ctx := t.Context()
	require.NoError(t, store.Save(ctx, "k", testRecord{Name: "v"}))
	require.NoError(t, store.Delete(ctx, "k"))

	var out testRecord
	require.ErrorIs(t, store.Load(ctx, "k", &out), ErrNotFound)

	// deleting an absent key is not an error
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestMemoryStore_KeyPrefix(t *testing.T) {
	a, err := NewStore(DriverMemory, WithKeyPrefix("tenant-a:"))
	require.NoError(t, err)
	b, err := NewStore(DriverMemory, WithKeyPrefix("tenant-b:"))
	require.NoError(t, err)

	ctx := t.Context()
	require.NoError(t, a.Save(ctx, "cart", testRecord{Name: "a"}))

	var out testRecord
	require.ErrorIs(t, b.Load(ctx, "cart", &out), ErrNotFound)
}

func TestNewStore_Validation(t *testing.T) {
	tests := []struct {
		name    string
		driver  Driver
		wantErr error
	}{
		{name: "redis without client: error", driver: DriverRedis, wantErr: ErrInvalidConfig},
		{name: "postgres without db: error", driver: DriverPostgres, wantErr: ErrInvalidConfig},
		{name: "unknown driver: error", driver: Driver("etcd"), wantErr: ErrInvalidDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(tt.driver)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
