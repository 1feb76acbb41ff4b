package domain

import "time"

// ComprehensiveAnalysis is the engine's single result type: the merged
// profile, the ranked strategies, the forecast scenarios and the synthesized
// plan for one run.
type ComprehensiveAnalysis struct {
	AnalysisID  string
	GeneratedAt time.Time
	Profile     FinancialProfile
	Strategies  []Strategy
	Scenarios   []Scenario
	Plan        Plan
}
