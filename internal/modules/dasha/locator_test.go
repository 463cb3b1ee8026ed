package dasha

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateAtBirth(t *testing.T) {
	tree, err := Vimshottari().BuildTree(127.0, birthMagha)
	require.NoError(t, err)

	active := Locate(tree, birthMagha)

	require.NotNil(t, active.Maha)
	require.NotNil(t, active.Antar)
	require.NotNil(t, active.Pratyantar)

	// At the birth instant every level starts with the starting lord.
	assert.Equal(t, "Ketu", active.Maha.Lord)
	assert.Equal(t, "Ketu", active.Antar.Lord)
	assert.Equal(t, "Ketu", active.Pratyantar.Lord)
}

func TestLocateLaterDate(t *testing.T) {
	tree, err := Vimshottari().BuildTree(127.0, birthMagha)
	require.NoError(t, err)

	// Ten years after birth: the Ketu balance (~3.3 years) has elapsed and
	// the 20-year Venus maha dasha is running.
	at := time.Date(1995, 2, 6, 3, 45, 0, 0, time.UTC)
	active := Locate(tree, at)

	require.NotNil(t, active.Maha)
	assert.Equal(t, "Venus", active.Maha.Lord)
	assert.NotNil(t, active.Antar)
	assert.NotNil(t, active.Pratyantar)
}

func TestLocateOutsideHorizon(t *testing.T) {
	tree, err := Vimshottari().BuildTree(127.0, birthMagha)
	require.NoError(t, err)

	t.Run("before birth", func(t *testing.T) {
		active := Locate(tree, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.Nil(t, active.Maha)
		assert.Nil(t, active.Antar)
		assert.Nil(t, active.Pratyantar)
	})

	t.Run("far future", func(t *testing.T) {
		active := Locate(tree, time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.Nil(t, active.Maha)
		assert.Nil(t, active.Antar)
		assert.Nil(t, active.Pratyantar)
	})
}

func TestLocateUnexpandedTree(t *testing.T) {
	// A maha-only list (no subdivision) still resolves the maha level;
	// deeper levels stay nil without erroring.
	mahas, err := Vimshottari().MajorPeriods(127.0, birthMagha)
	require.NoError(t, err)

	active := Locate(mahas, birthMagha)
	assert.NotNil(t, active.Maha)
	assert.Nil(t, active.Antar)
	assert.Nil(t, active.Pratyantar)
}

func TestLocateYogini(t *testing.T) {
	tree, err := Yogini().BuildTree(127.0, birthMagha)
	require.NoError(t, err)

	t.Run("at birth the starting yogini rules every level", func(t *testing.T) {
		active := Locate(tree, birthMagha)
		require.NotNil(t, active.Maha)
		assert.Equal(t, tree[0].Lord, active.Maha.Lord)
		assert.NotNil(t, active.Antar)
		assert.NotNil(t, active.Pratyantar)
	})

	t.Run("mid-life query resolves all three levels", func(t *testing.T) {
		active := Locate(tree, time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC))
		assert.NotNil(t, active.Maha)
		assert.NotNil(t, active.Antar)
		assert.NotNil(t, active.Pratyantar)
	})
}

func TestPeriodContains(t *testing.T) {
	p := Period{
		Start: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, p.Contains(p.Start), "intervals are closed at the start")
	assert.False(t, p.Contains(p.End), "intervals are open at the end")
	assert.True(t, p.Contains(time.Date(2000, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC)))
}
