package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Store for tests. FailPuts makes the next n Put
// calls return PutErr.
type Memory struct {
	mu       sync.Mutex
	objects  map[string][]byte
	types    map[string]string
	puts     int
	FailPuts int
	PutErr   error
}

func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (m *Memory) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.puts++
	if m.FailPuts > 0 {
		m.FailPuts--
		return "", m.PutErr
	}
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}
	m.objects[name] = append([]byte(nil), data...)
	m.types[name] = contentType
	return name, nil
}

func (m *Memory) URL(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[id]; !ok {
		return "", ErrNoObject
	}
	return "memory://" + id, nil
}

func (m *Memory) Get(id string) ([]byte, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.objects[id]
	return data, m.types[id], ok
}

// Puts counts every Put call including failed ones.
func (m *Memory) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}
