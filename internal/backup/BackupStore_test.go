package backup

import (
	"errors"
	"os"
	"path/filepath"
	"rankwatch/internal/models"
	"rankwatch/internal/structures"
	"rankwatch/internal/testutil"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour int) time.Time {
	return time.Date(2024, time.March, day, hour, 0, 0, 0, time.Local)
}

func newTestStore(t *testing.T, compress bool) (*BackupStore, *testutil.MockMetrics) {
	t.Helper()
	conf := &structures.Config{Backup: structures.BackupConfig{Dir: filepath.Join(t.TempDir(), "backups"), Compress: compress}}
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	t.Cleanup(comp.Close)

	metrics := &testutil.MockMetrics{}
	store := NewBackupStore(conf, comp, metrics, &testutil.MockLogger{}).(*BackupStore)
	store.now = func() time.Time { return time.Date(2024, time.March, 10, 12, 30, 45, 0, time.Local) }
	return store, metrics
}

func TestBackupStore_LatestOnMissingDir(t *testing.T) {
	store, _ := newTestStore(t, false)

	path, ok, err := store.Latest()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, path)
}

func TestBackupStore_AppendWritesSortedUnion(t *testing.T) {
	store, metrics := newTestStore(t, false)

	existing := models.RankSeries{{Timestamp: at(1, 10), Rank: 130}, {Timestamp: at(2, 10), Rank: 125}}
	fresh := models.RankSeries{{Timestamp: at(4, 10), Rank: 110}, {Timestamp: at(3, 10), Rank: 120}}

	path, err := store.Append(existing, fresh)
	require.NoError(t, err)
	assert.Equal(t, "rank_backup_2024-03-10_12-30-45.csv", filepath.Base(path))
	assert.Equal(t, 1, metrics.BackupWrites)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "DateTime,Rank\n"+
		"2024-03-01 10:00:00,130\n"+
		"2024-03-02 10:00:00,125\n"+
		"2024-03-03 10:00:00,120\n"+
		"2024-03-04 10:00:00,110\n", string(raw))

	loaded, err := store.Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 4)
	assert.True(t, loaded[2].Timestamp.Equal(at(3, 10)))
	assert.Equal(t, 120, loaded[2].Rank)

	last, err := store.LastSample(path)
	require.NoError(t, err)
	assert.Equal(t, 110, last.Rank)
}

func TestBackupStore_AppendNeverOverwrites(t *testing.T) {
	store, _ := newTestStore(t, false)

	first, err := store.Append(nil, models.RankSeries{{Timestamp: at(1, 10), Rank: 5}})
	require.NoError(t, err)
	second, err := store.Append(nil, models.RankSeries{{Timestamp: at(2, 10), Rank: 6}})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "rank_backup_2024-03-10_12-30-46.csv", filepath.Base(second))

	series, err := store.Load(first)
	require.NoError(t, err)
	assert.Equal(t, 5, series[0].Rank)

	entries, err := os.ReadDir(store.dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file left behind: %s", e.Name())
	}
}

func TestBackupStore_LatestByModTimeThenName(t *testing.T) {
	store, _ := newTestStore(t, false)
	require.NoError(t, os.MkdirAll(store.dir, 0o755))

	write := func(name string, mod time.Time) string {
		p := filepath.Join(store.dir, name)
		require.NoError(t, os.WriteFile(p, []byte("DateTime,Rank\n"), 0o644))
		require.NoError(t, os.Chtimes(p, mod, mod))
		return p
	}

	base := time.Now().Add(-time.Hour)
	write("rank_backup_2030-01-01_00-00-00.csv", base)
	newest := write("rank_backup_2020-01-01_00-00-00.csv", base.Add(time.Minute))
	write("notes.txt", base.Add(time.Hour))

	path, ok, err := store.Latest()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, newest, path)

	tie := write("rank_backup_2021-01-01_00-00-00.csv.zst", base.Add(time.Minute))
	path, _, err = store.Latest()
	require.NoError(t, err)
	assert.Equal(t, tie, path)
}

func TestBackupStore_CompressedRoundtrip(t *testing.T) {
	store, _ := newTestStore(t, true)

	path, err := store.Append(nil, models.RankSeries{{Timestamp: at(5, 8), Rank: 77}})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".csv.zst"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 4)
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, raw[:4])

	series, err := store.Load(path)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, 77, series[0].Rank)
}

func TestBackupStore_FreePathFailsOnStatError(t *testing.T) {
	store, _ := newTestStore(t, false)
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	store.dir = filepath.Join(blocker, "backups")

	done := make(chan error, 1)
	go func() {
		_, err := store.freePath(csvExt)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "checking backup name")
	case <-time.After(2 * time.Second):
		t.Fatal("freePath did not return")
	}
}

func TestBackupStore_FreePathSkipsTakenNames(t *testing.T) {
	store, _ := newTestStore(t, false)
	require.NoError(t, os.MkdirAll(store.dir, 0o755))
	taken := filepath.Join(store.dir, "rank_backup_2024-03-10_12-30-45.csv")
	require.NoError(t, os.WriteFile(taken, []byte("DateTime,Rank\n"), 0o644))

	path, err := store.freePath(csvExt)
	require.NoError(t, err)
	assert.Equal(t, "rank_backup_2024-03-10_12-30-46.csv", filepath.Base(path))
}

func TestBackupStore_LoadErrors(t *testing.T) {
	store, _ := newTestStore(t, false)
	dir := t.TempDir()

	_, err := store.Load(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	badHeader := filepath.Join(dir, "bad_header.csv")
	require.NoError(t, os.WriteFile(badHeader, []byte("When,Where\n"), 0o644))
	_, err = store.Load(badHeader)
	assert.Error(t, err)

	badRank := filepath.Join(dir, "bad_rank.csv")
	require.NoError(t, os.WriteFile(badRank, []byte("DateTime,Rank\n2024-03-01 10:00:00,high\n"), 0o644))
	_, err = store.Load(badRank)
	assert.ErrorContains(t, err, "line 2")
}

func TestBackupStore_LastSampleOfEmptyBackup(t *testing.T) {
	store, _ := newTestStore(t, false)
	path := filepath.Join(t.TempDir(), "rank_backup_empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("DateTime,Rank\n"), 0o644))

	_, err := store.LastSample(path)
	assert.True(t, errors.Is(err, models.ErrNoData))
}

func TestBackupStore_CompressFailureLeavesNoFile(t *testing.T) {
	conf := &structures.Config{Backup: structures.BackupConfig{Dir: t.TempDir(), Compress: true}}
	comp := &testutil.MockCompressor{CompressFn: func([]byte) ([]byte, error) { return nil, errors.New("boom") }}
	store := NewBackupStore(conf, comp, &testutil.MockMetrics{}, &testutil.MockLogger{})

	_, err := store.Append(nil, models.RankSeries{{Timestamp: at(1, 1), Rank: 1}})
	assert.ErrorContains(t, err, "boom")

	entries, err := os.ReadDir(conf.Backup.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	store.Close()
	assert.True(t, comp.Closed)
}
