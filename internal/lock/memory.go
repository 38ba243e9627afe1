package lock

import (
	"context"
	"sync"
)

type entry struct {
	ch   chan struct{}
	refs int
}

// Memory is an in-process Locker. Each key owns a one-slot channel that is
// created on first use and dropped once no goroutine holds or waits for it.
type Memory struct {
	mu   sync.Mutex
	keys map[string]*entry
}

// NewMemory returns an empty in-process Locker.
func NewMemory() *Memory {
	return &Memory{keys: make(map[string]*entry)}
}

func (m *Memory) Lock(ctx context.Context, key string) (func(), error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	m.mu.Lock()
	e, ok := m.keys[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		m.keys[key] = e
	}
	e.refs++
	m.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		m.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			m.release(key, e)
		})
	}, nil
}

func (m *Memory) release(key string, e *entry) {
	m.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(m.keys, key)
	}
	m.mu.Unlock()
}

// size reports how many keys are tracked.
func (m *Memory) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.keys)
}
