// Package draft menyimpan formulir yang belum dikirim agar bisa dilanjutkan.
package draft

import (
	"context"
	"errors"
	"sync"
)

const (
	DraftKeyPrefix        = "gmit-form-draft"
	RegistrationKeyPrefix = "gmit-last-registration-id"
)

// ErrNotFound dikembalikan Store bila kunci belum pernah ditulis.
var ErrNotFound = errors.New("draft tidak ditemukan")

// Store adalah penyimpanan kunci-nilai untuk draft.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// DraftKey mengembalikan kunci draft untuk satu perangkat.
func DraftKey(deviceID string) string {
	return scoped(DraftKeyPrefix, deviceID)
}

// RegistrationKey mengembalikan kunci ID pendaftaran terakhir untuk satu perangkat.
func RegistrationKey(deviceID string) string {
	return scoped(RegistrationKeyPrefix, deviceID)
}

func scoped(prefix, deviceID string) string {
	if deviceID == "" {
		return prefix
	}
	return prefix + ":" + deviceID
}

// MemoryStore menyimpan draft di memori proses.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
