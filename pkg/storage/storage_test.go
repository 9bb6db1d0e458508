package storage

import (
	"testing"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/ssargent/dmidb/pkg/codec"
	"github.com/ssargent/dmidb/pkg/smbios"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() []byte {
	return []byte{
		0x0B, 0x05, 0x01, 0x00, 0x01, 'A', 'c', 'm', 'e', 0x00, 0x00,
		0x7F, 0x04, 0x02, 0x00, 0x00, 0x00,
	}
}

func openTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store, err := Open("/snapshots", Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// snapshotAt builds a snapshot captured at a fixed time; KSUIDs order by
// second, so tests space captures at least a second apart.
func snapshotAt(at time.Time, source string) *codec.Snapshot {
	snap := codec.NewSnapshot(testTable(), &smbios.Version{Major: 3, Minor: 2}, source)
	snap.Timestamp = uint64(at.UnixNano())
	return snap
}

func TestSnapshotStore_CreateRead(t *testing.T) {
	store := openTestStore(t)

	id, err := store.Create(snapshotAt(time.Now(), "sysfs"))
	require.NoError(t, err)
	assert.NotEqual(t, ksuid.Nil, id)

	snap, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, testTable(), snap.Data)
	assert.Equal(t, "sysfs", string(snap.Source))
	assert.Equal(t, 2, snap.Table().Len())
}

func TestSnapshotStore_ReadMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Read(ksuid.New())
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotStore_Delete(t *testing.T) {
	store := openTestStore(t)

	id, err := store.Create(snapshotAt(time.Now(), "dump"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(id))
	_, err = store.Read(id)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	assert.ErrorIs(t, store.Delete(id), ErrSnapshotNotFound)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
	_, _, err = store.Latest()
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotStore_ListChronological(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// Insert out of order; the listing follows capture time.
	var ids []ksuid.KSUID
	for _, offset := range []int{2, 0, 1} {
		id, err := store.Create(snapshotAt(base.Add(time.Duration(offset)*time.Hour), "sysfs"))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, ids[1], entries[0].ID)
	assert.Equal(t, ids[2], entries[1].ID)
	assert.Equal(t, ids[0], entries[2].ID)
	assert.Equal(t, base, entries[0].CapturedAt)
	assert.Equal(t, len(testTable()), entries[0].Size)
	assert.Equal(t, "sysfs", entries[0].Source)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSnapshotStore_Latest(t *testing.T) {
	store := openTestStore(t)

	_, _, err := store.Latest()
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	base := time.Now().Add(-time.Hour)
	_, err = store.Create(snapshotAt(base, "old"))
	require.NoError(t, err)
	newest, err := store.Create(snapshotAt(base.Add(time.Minute), "new"))
	require.NoError(t, err)

	id, snap, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, newest, id)
	assert.Equal(t, "new", string(snap.Source))
}

func TestSnapshotStore_DetectsCorruption(t *testing.T) {
	store := openTestStore(t)

	id, err := store.Create(snapshotAt(time.Now(), "sysfs"))
	require.NoError(t, err)

	value, closer, err := store.db.Get(id.Bytes())
	require.NoError(t, err)
	corrupted := append([]byte(nil), value...)
	require.NoError(t, closer.Close())
	corrupted[len(corrupted)-3] ^= 0xFF
	require.NoError(t, store.db.Set(id.Bytes(), corrupted, nil))

	_, err = store.Read(id)
	assert.ErrorIs(t, err, ErrCorruption)

	_, err = store.List()
	assert.ErrorIs(t, err, ErrCorruption)
}

func TestSnapshotStore_Closed(t *testing.T) {
	store, err := Open("/snapshots", Options{InMemory: true})
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err = store.Create(snapshotAt(time.Now(), "sysfs"))
	assert.ErrorIs(t, err, ErrClosed)
	_, err = store.Read(ksuid.New())
	assert.ErrorIs(t, err, ErrClosed)
	_, err = store.List()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSnapshotStore_OnDisk(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir, Options{Sync: true})
	require.NoError(t, err)
	id, err := store.Create(snapshotAt(time.Now(), "sysfs"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(dir, Options{})
	require.NoError(t, err)
	defer reopened.Close()

	snap, err := reopened.Read(id)
	require.NoError(t, err)
	assert.Equal(t, testTable(), snap.Data)
}
