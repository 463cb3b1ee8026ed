package chartcache

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testhelpers "github.com/jyotishlab/jyotish/internal/testing"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type fakeTree struct {
	Lord  string  `msgpack:"lord"`
	Years float64 `msgpack:"years"`
}

func TestStoreAndGetIfFresh(t *testing.T) {
	db, cleanup := testhelpers.NewTestDB(t, "cache")
	defer cleanup()

	repo := NewRepository(db.Conn())

	key := Key("chart-1", "vimshottari")
	original := []fakeTree{{Lord: "Ketu", Years: 7}, {Lord: "Venus", Years: 20}}

	require.NoError(t, repo.Store(key, original, time.Hour))

	var decoded []fakeTree
	hit, err := repo.GetIfFresh(key, &decoded)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, original, decoded)
}

func TestGetIfFreshMissingKey(t *testing.T) {
	db, cleanup := testhelpers.NewTestDB(t, "cache")
	defer cleanup()

	repo := NewRepository(db.Conn())

	var decoded []fakeTree
	hit, err := repo.GetIfFresh("no-such-key", &decoded)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestExpiredEntryIsMiss(t *testing.T) {
	db, cleanup := testhelpers.NewTestDB(t, "cache")
	defer cleanup()

	repo := NewRepository(db.Conn())

	key := Key("chart-1", "yogini")
	require.NoError(t, repo.Store(key, []fakeTree{{Lord: "Ulka"}}, -time.Hour))

	var decoded []fakeTree
	hit, err := repo.GetIfFresh(key, &decoded)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestStoreOverwritesExisting(t *testing.T) {
	db, cleanup := testhelpers.NewTestDB(t, "cache")
	defer cleanup()

	repo := NewRepository(db.Conn())

	key := Key("chart-1", "vimshottari")
	require.NoError(t, repo.Store(key, fakeTree{Lord: "Ketu"}, time.Hour))
	require.NoError(t, repo.Store(key, fakeTree{Lord: "Venus"}, time.Hour))

	var decoded fakeTree
	hit, err := repo.GetIfFresh(key, &decoded)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "Venus", decoded.Lord)
}

func TestDeleteForChart(t *testing.T) {
	db, cleanup := testhelpers.NewTestDB(t, "cache")
	defer cleanup()

	repo := NewRepository(db.Conn())

	require.NoError(t, repo.Store(Key("chart-1", "vimshottari"), fakeTree{Lord: "Ketu"}, time.Hour))
	require.NoError(t, repo.Store(Key("chart-1", "yogini"), fakeTree{Lord: "Ulka"}, time.Hour))
	require.NoError(t, repo.Store(Key("chart-2", "vimshottari"), fakeTree{Lord: "Moon"}, time.Hour))

	require.NoError(t, repo.DeleteForChart("chart-1"))

	var decoded fakeTree
	hit, err := repo.GetIfFresh(Key("chart-1", "vimshottari"), &decoded)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = repo.GetIfFresh(Key("chart-1", "yogini"), &decoded)
	require.NoError(t, err)
	assert.False(t, hit)

	// Other charts untouched
	hit, err = repo.GetIfFresh(Key("chart-2", "vimshottari"), &decoded)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestDeleteExpired(t *testing.T) {
	db, cleanup := testhelpers.NewTestDB(t, "cache")
	defer cleanup()

	repo := NewRepository(db.Conn())

	require.NoError(t, repo.Store("fresh", fakeTree{Lord: "Sun"}, time.Hour))
	require.NoError(t, repo.Store("stale-1", fakeTree{Lord: "Moon"}, -time.Hour))
	require.NoError(t, repo.Store("stale-2", fakeTree{Lord: "Mars"}, -2*time.Hour))

	deleted, err := repo.DeleteExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var decoded fakeTree
	hit, err := repo.GetIfFresh("fresh", &decoded)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestCleanupJobRun(t *testing.T) {
	db, cleanup := testhelpers.NewTestDB(t, "cache")
	defer cleanup()

	repo := NewRepository(db.Conn())
	require.NoError(t, repo.Store("stale", fakeTree{Lord: "Rahu"}, -time.Minute))

	job := NewCleanupJob(repo, testLogger())
	assert.Equal(t, "tree_cache_cleanup", job.Name())
	require.NoError(t, job.Run())

	var decoded fakeTree
	hit, err := repo.GetIfFresh("stale", &decoded)
	require.NoError(t, err)
	assert.False(t, hit)
}
