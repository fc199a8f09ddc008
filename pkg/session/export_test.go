package session

// LockCount reports how many per-session locks are currently tracked.
func LockCount(m *Manager) int {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()
	return len(m.locks)
}
