package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-process Store. Nothing survives a restart.
type Memory struct {
	mu    sync.Mutex
	slots map[string]Slot
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[string]Slot)}
}

func (m *Memory) Put(_ context.Context, slot Slot) error {
	if slot.Name == "" {
		return fmt.Errorf("empty slot name")
	}
	slot.Blob = append([]byte(nil), slot.Blob...)
	m.mu.Lock()
	m.slots[slot.Name] = slot
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(_ context.Context, name string) (Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot, ok := m.slots[name]
	if !ok {
		return Slot{}, fmt.Errorf("slot %s: %w", name, ErrNotFound)
	}
	slot.Blob = append([]byte(nil), slot.Blob...)
	return slot, nil
}

func (m *Memory) List(_ context.Context) ([]Slot, error) {
	m.mu.Lock()
	out := make([]Slot, 0, len(m.slots))
	for _, slot := range m.slots {
		slot.Blob = nil
		out = append(out, slot)
	}
	m.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].SavedAt.After(out[j].SavedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *Memory) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[name]; !ok {
		return fmt.Errorf("slot %s: %w", name, ErrNotFound)
	}
	delete(m.slots, name)
	return nil
}

func (m *Memory) Close() error { return nil }
