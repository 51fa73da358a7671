// Package storage provides the host key/value storage used for
// persisted picker state.
package storage

import (
	"strings"
	"sync"
)

// Storage is a string key/value store. A missing key is reported with
// ok == false and a nil error.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// PrefixRemover is implemented by backends that can drop every key sharing a
// prefix, such as all state stored for one host.
type PrefixRemover interface {
	RemovePrefix(prefix string) (int64, error)
}

// Memory is an in-process Storage. The zero value is not usable; call NewMemory.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

var (
	_ Storage       = (*Memory)(nil)
	_ PrefixRemover = (*Memory)(nil)
)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// RemovePrefix deletes every key starting with prefix.
func (m *Memory) RemovePrefix(prefix string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			delete(m.values, k)
			n++
		}
	}
	return n, nil
}
