// Package cache persists the industry taxonomy between runs. Enumerating
// industries means screening every sector upstream, which is slow and
// rate-limited, so the result is kept in a JSON file with a TTL.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type snapshot struct {
	Timestamp time.Time           `json:"timestamp"`
	Sectors   map[string][]string `json:"sectors"`
}

// Lister enumerates the sector to industries mapping from the upstream screener.
type Lister interface {
	Industries(ctx context.Context) (map[string][]string, error)
}

// IndustryStore caches the industry taxonomy on disk.
type IndustryStore struct {
	mu       sync.Mutex
	filePath string
	ttl      time.Duration
	lister   Lister
}

// NewIndustryStore creates a store backed by filePath with the given TTL.
func NewIndustryStore(filePath string, ttl time.Duration, lister Lister) *IndustryStore {
	return &IndustryStore{filePath: filePath, ttl: ttl, lister: lister}
}

// Get returns the cached taxonomy, refreshing from upstream when the cache
// is missing or stale. A stale cache is still served if the refresh fails.
func (s *IndustryStore) Get(ctx context.Context) (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err == nil && time.Since(snap.Timestamp) < s.ttl {
		return snap.Sectors, nil
	}

	sectors, refreshErr := s.refresh(ctx)
	if refreshErr != nil {
		if err == nil && len(snap.Sectors) > 0 {
			log.Printf("[WARN] industry refresh failed, serving stale cache: %v", refreshErr)
			return snap.Sectors, nil
		}
		return nil, fmt.Errorf("refresh industries: %w", refreshErr)
	}
	return sectors, nil
}

// Refresh forces a fetch from upstream and rewrites the cache file.
func (s *IndustryStore) Refresh(ctx context.Context) (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh(ctx)
}

func (s *IndustryStore) refresh(ctx context.Context) (map[string][]string, error) {
	sectors, err := s.lister.Industries(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.save(snapshot{Timestamp: time.Now(), Sectors: sectors}); err != nil {
		log.Printf("[WARN] failed to persist industry cache: %v", err)
	}
	return sectors, nil
}

func (s *IndustryStore) load() (snapshot, error) {
	var snap snapshot
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, err
	}
	return snap, nil
}

func (s *IndustryStore) save(snap snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.filePath, data, 0644)
}
