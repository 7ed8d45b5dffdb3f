package kvstore

import (
	"fmt"
	"path"
	"sync"
	"time"
)

// Memory is a process-local KVStore used by tests and local development
// when no Redis is reachable. Pattern matching in Keys follows path.Match,
// which covers the '*' globs used across the services.
type Memory struct {
	mu      sync.Mutex
	strings map[string]memEntry
	lists   map[string][]string
	hashes  map[string]map[string]string
}

type memEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemory() *Memory {
	return &Memory{
		strings: make(map[string]memEntry),
		lists:   make(map[string][]string),
		hashes:  make(map[string]map[string]string),
	}
}

func (m *Memory) Set(key string, value interface{}) error {
	return m.SetEx(key, value, 0)
}

func (m *Memory) SetEx(key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := memEntry{value: fmt.Sprintf("%v", value)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.strings[key] = entry
	return nil
}

func (m *Memory) SetNX(key string, value interface{}, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.strings[key]; ok && !entry.expired() {
		return false, nil
	}
	entry := memEntry{value: fmt.Sprintf("%v", value)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.strings[key] = entry
	return true, nil
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.strings[key]
	if !ok || entry.expired() {
		delete(m.strings, key)
		return "", ErrNotFound
	}
	return entry.value, nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.strings, key)
	delete(m.lists, key)
	delete(m.hashes, key)
	return nil
}

func (m *Memory) LPush(key string, values ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range values {
		m.lists[key] = append([]string{fmt.Sprintf("%v", v)}, m.lists[key]...)
	}
	return nil
}

func (m *Memory) RPush(key string, values ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range values {
		m.lists[key] = append(m.lists[key], fmt.Sprintf("%v", v))
	}
	return nil
}

func (m *Memory) LRange(key string, start, stop int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.lists[key]
	n := int64(len(list))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || n == 0 {
		return []string{}, nil
	}
	out := make([]string, 0, stop-start+1)
	out = append(out, list[start:stop+1]...)
	return out, nil
}

func (m *Memory) LRem(key string, count int64, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := fmt.Sprintf("%v", value)
	removed := int64(0)
	kept := m.lists[key][:0]
	for _, v := range m.lists[key] {
		if v == want && (count == 0 || removed < count) {
			removed++
			continue
		}
		kept = append(kept, v)
	}
	m.lists[key] = kept
	return nil
}

func (m *Memory) HSet(key, field string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hashes[key] == nil {
		m.hashes[key] = make(map[string]string)
	}
	m.hashes[key][field] = fmt.Sprintf("%v", value)
	return nil
}

func (m *Memory) HGet(key, field string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.hashes[key][field]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (m *Memory) HGetAll(key string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.hashes[key]))
	for k, v := range m.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) HDel(key string, fields ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range fields {
		delete(m.hashes[key], f)
	}
	return nil
}

func (m *Memory) Keys(pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0)
	for k := range m.strings {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	for k := range m.lists {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	for k := range m.hashes {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (e memEntry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}
