package store

import "sync"

// Manager hands out at most one Store per project root, matching the
// ownership rule that the server process holds at most one Store
// connection per active project at a time.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{stores: make(map[string]*Store)}
}

// Get opens (or reuses) the Store for the project rooted at projectRoot,
// using dbPath as the sessions.db location.
func (m *Manager) Get(projectRoot, dbPath string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[projectRoot]; ok {
		return s, nil
	}

	s, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	m.stores[projectRoot] = s
	return s, nil
}

// CloseAll closes every open Store, used at server shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for root, s := range m.stores {
		s.Close()
		delete(m.stores, root)
	}
}
