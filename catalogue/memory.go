package catalogue

import (
	"fmt"
	"sync"

	"entsearch/metrics"
)

// Memory is an in-process catalogue. Entries are listed in registration order.
type Memory struct {
	mu        sync.RWMutex
	solutions []Solution
	features  []Feature
	ids       map[string]struct{}
}

// NewMemory creates an empty in-process catalogue.
func NewMemory() *Memory {
	return &Memory{ids: make(map[string]struct{})}
}

// RegisterSolution adds a solution.
func (m *Memory) RegisterSolution(solution Solution) error {
	if err := validateSolution(solution); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.claim(KindSolution, solution.ID); err != nil {
		return err
	}
	m.solutions = append(m.solutions, solution)
	metrics.CatalogueRegistrations.WithLabelValues(KindSolution).Inc()
	return nil
}

// Register adds a feature.
func (m *Memory) Register(feature Feature) error {
	if err := validateFeature(feature); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.claim(KindFeature, feature.ID); err != nil {
		return err
	}
	m.features = append(m.features, feature)
	metrics.CatalogueRegistrations.WithLabelValues(KindFeature).Inc()
	return nil
}

// claim reserves id within kind. Caller holds the write lock.
func (m *Memory) claim(kind, id string) error {
	key := kind + ":" + id
	if _, exists := m.ids[key]; exists {
		return fmt.Errorf("%w: %s %s", ErrDuplicateEntry, kind, id)
	}
	m.ids[key] = struct{}{}
	return nil
}

// Solutions returns the registered solutions.
func (m *Memory) Solutions() ([]Solution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Solution, len(m.solutions))
	copy(out, m.solutions)
	return out, nil
}

// Features returns the registered features.
func (m *Memory) Features() ([]Feature, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Feature, len(m.features))
	copy(out, m.features)
	return out, nil
}
