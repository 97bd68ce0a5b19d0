package format

import "sync"

// Memo caches values a strategy derives more than once. Values that write
// to the ledger go through a Memo so repeated accessor calls neither repeat
// lookups nor duplicate entries. The zero value is ready to use.
type Memo struct {
	mu     sync.Mutex
	values map[string]any
}

// Get returns the value cached under key, computing it on first use. The
// lock is not held while compute runs, so compute may call Get itself.
func (m *Memo) Get(key string, compute func() any) any {
	m.mu.Lock()
	if v, ok := m.values[key]; ok {
		m.mu.Unlock()
		return v
	}
	m.mu.Unlock()

	v := compute()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if prev, ok := m.values[key]; ok {
		return prev
	}
	m.values[key] = v
	return v
}
