package repository

import (
	"sync"

	"strategy-engine/domain"
)

// AnalysisRepositoryMemory is an in-memory implementation of
// AnalysisRepository. Safe for concurrent use.
type AnalysisRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.ComprehensiveAnalysis
}

// NewAnalysisRepositoryMemory creates a new in-memory analysis repository.
func NewAnalysisRepositoryMemory() *AnalysisRepositoryMemory {
	return &AnalysisRepositoryMemory{
		data: make(map[string]domain.ComprehensiveAnalysis),
	}
}

// Save stores the analysis in memory, keyed by its ID.
func (r *AnalysisRepositoryMemory) Save(analysis domain.ComprehensiveAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[analysis.AnalysisID] = analysis
	return nil
}

// FindByID returns a previously saved analysis.
func (r *AnalysisRepositoryMemory) FindByID(id string) (domain.ComprehensiveAnalysis, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.data[id]
	return analysis, ok
}
