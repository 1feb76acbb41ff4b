package repository

import "strategy-engine/domain"

type AnalysisRepository interface {
	Save(analysis domain.ComprehensiveAnalysis) error
	FindByID(id string) (domain.ComprehensiveAnalysis, bool)
}
