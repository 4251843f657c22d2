// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package session

import (
	"context"
	"sync"
	"time"
)

// MemoryTokenStore is an in-process [TokenStore] used by tests.
//
// It honors TTLs lazily: expired records are dropped on read rather than by a
// background sweeper.
type MemoryTokenStore struct {
	mu      sync.Mutex
	records map[string]memoryRecord
}

type memoryRecord struct {
	record    Record
	expiresAt time.Time
}

// NewMemoryTokenStore creates an empty in-memory [TokenStore].
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{records: make(map[string]memoryRecord)}
}

// Save stores the record, replacing any previous value for id.
func (store *MemoryTokenStore) Save(_ context.Context, id string, record Record, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.records[id] = memoryRecord{
		record:    record,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Get returns the record for id, or (nil, nil) when missing or expired.
func (store *MemoryTokenStore) Get(_ context.Context, id string) (*Record, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.records[id]
	if !ok {
		return nil, nil
	}

	if time.Now().After(entry.expiresAt) {
		delete(store.records, id)
		return nil, nil
	}

	record := entry.record
	return &record, nil
}

// Delete removes the record. Absent IDs are a no-op.
func (store *MemoryTokenStore) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.records, id)
	return nil
}
