package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	sectors map[string][]string
	err     error
	calls   int
}

func (f *fakeLister) Industries(_ context.Context) (map[string][]string, error) {
	f.calls++
	return f.sectors, f.err
}

func TestGet_FetchesAndPersistsWhenCacheMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "industries.json")
	lister := &fakeLister{sectors: map[string][]string{
		"Industrials": {"Auto Components"},
		"Financial":   {"Banks"},
	}}
	store := NewIndustryStore(path, 7*24*time.Hour, lister)

	got, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, lister.sectors, got)
	assert.Equal(t, 1, lister.calls)

	// The result landed on disk.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, lister.sectors, snap.Sectors)
	assert.WithinDuration(t, time.Now(), snap.Timestamp, time.Minute)
}

func TestGet_ServesFreshCacheWithoutUpstreamCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "industries.json")
	lister := &fakeLister{sectors: map[string][]string{"Technology": {"IT Services"}}}
	store := NewIndustryStore(path, 7*24*time.Hour, lister)

	_, err := store.Get(context.Background())
	require.NoError(t, err)
	_, err = store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, lister.calls)
}

func TestGet_RefreshesStaleCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "industries.json")
	stale := snapshot{
		Timestamp: time.Now().Add(-8 * 24 * time.Hour),
		Sectors:   map[string][]string{"Old": {"Old Industry"}},
	}
	data, _ := json.Marshal(stale)
	require.NoError(t, os.WriteFile(path, data, 0644))

	lister := &fakeLister{sectors: map[string][]string{"New": {"New Industry"}}}
	store := NewIndustryStore(path, 7*24*time.Hour, lister)

	got, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, lister.sectors, got)
	assert.Equal(t, 1, lister.calls)
}

func TestGet_ServesStaleCacheWhenRefreshFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "industries.json")
	stale := snapshot{
		Timestamp: time.Now().Add(-30 * 24 * time.Hour),
		Sectors:   map[string][]string{"Healthcare": {"Pharma"}},
	}
	data, _ := json.Marshal(stale)
	require.NoError(t, os.WriteFile(path, data, 0644))

	lister := &fakeLister{err: errors.New("upstream down")}
	store := NewIndustryStore(path, 7*24*time.Hour, lister)

	got, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stale.Sectors, got)
}

func TestGet_ErrorsWhenNoCacheAndUpstreamFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "industries.json")
	lister := &fakeLister{err: errors.New("upstream down")}
	store := NewIndustryStore(path, 7*24*time.Hour, lister)

	_, err := store.Get(context.Background())
	assert.Error(t, err)
}

func TestRefresh_AlwaysCallsUpstream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "industries.json")
	lister := &fakeLister{sectors: map[string][]string{"Materials": {"Metals"}}}
	store := NewIndustryStore(path, 7*24*time.Hour, lister)

	_, err := store.Refresh(context.Background())
	require.NoError(t, err)
	_, err = store.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, lister.calls)
}
