package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, InitSchema(db))
	return NewStore(db)
}

func TestRecordAndListFetches(t *testing.T) {
	s := newTestStore(t)
	base := time.Now().Truncate(time.Second)

	require.NoError(t, s.RecordFetch(&FetchRecord{
		Symbol: "AAPL", Days: 30, BusinessDays: true,
		Points: 21, LatestPrice: 182.5, Currency: "USD",
		FetchedAt: base.Add(-time.Minute),
	}))
	require.NoError(t, s.RecordFetch(&FetchRecord{
		Symbol: "SHOP.TO", Days: 7, BusinessDays: false,
		Points: 9, LatestPrice: 99.1, Currency: "CAD",
		FetchedAt: base,
	}))

	got, err := s.RecentFetches(10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first.
	assert.Equal(t, "SHOP.TO", got[0].Symbol)
	assert.False(t, got[0].BusinessDays)
	assert.Equal(t, "CAD", got[0].Currency)
	assert.Equal(t, base.Unix(), got[0].FetchedAt.Unix())

	assert.Equal(t, "AAPL", got[1].Symbol)
	assert.True(t, got[1].BusinessDays)
	assert.Equal(t, 21, got[1].Points)
	assert.Equal(t, 182.5, got[1].LatestPrice)
}

func TestRecentFetchesLimit(t *testing.T) {
	s := newTestStore(t)
	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordFetch(&FetchRecord{
			Symbol: "AAPL", Days: 30, Points: 21,
			FetchedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}
	got, err := s.RecentFetches(3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestRecentFetchesEmpty(t *testing.T) {
	s := newTestStore(t)
	got, err := s.RecentFetches(10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
