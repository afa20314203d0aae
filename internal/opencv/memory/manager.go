package memory

import (
	"sync"

	"symmetry-studio/internal/logger"
	"symmetry-studio/internal/opencv/safe"
)

// Manager tracks Mats created during one operation and releases them
// together when the operation finishes.
type Manager struct {
	allocations map[uint64]*safe.Mat
	mu          sync.Mutex
	stats       Stats
	log         logger.Logger
}

type Stats struct {
	TotalAllocated int64
	TotalReleased  int64
	ActiveMats     int64
	PeakMats       int64
}

func NewManager(log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{
		allocations: make(map[uint64]*safe.Mat),
		log:         log,
	}
}

// Track registers mat for release by Cleanup and returns it unchanged.
func (m *Manager) Track(mat *safe.Mat) *safe.Mat {
	if mat == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.allocations[mat.ID()]; exists {
		return mat
	}
	m.allocations[mat.ID()] = mat
	m.stats.TotalAllocated++
	m.stats.ActiveMats++
	m.stats.PeakMats = max(m.stats.PeakMats, m.stats.ActiveMats)
	return mat
}

// Release closes a single tracked Mat ahead of Cleanup.
func (m *Manager) Release(mat *safe.Mat) {
	if mat == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.allocations[mat.ID()]; !exists {
		m.log.Warning("MemoryManager", "releasing untracked Mat", map[string]interface{}{
			"mat_id": mat.ID(),
			"tag":    mat.Tag(),
		})
		mat.Close()
		return
	}

	mat.Close()
	delete(m.allocations, mat.ID())
	m.stats.TotalReleased++
	m.stats.ActiveMats--
}

func (m *Manager) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Cleanup closes every Mat still tracked and returns how many were closed.
func (m *Manager) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for id, mat := range m.allocations {
		mat.Close()
		delete(m.allocations, id)
		count++
	}
	m.stats.TotalReleased += int64(count)
	m.stats.ActiveMats = 0

	if count > 0 {
		m.log.Debug("MemoryManager", "released Mats", map[string]interface{}{
			"count": count,
			"peak":  m.stats.PeakMats,
		})
	}
	return count
}
