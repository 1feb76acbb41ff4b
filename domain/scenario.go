package domain

import "time"

// Milestone marks a debt-remaining checkpoint inside a scenario projection.
type Milestone struct {
	Month       int
	Label       string
	Impact      string
	Probability float64
}

// Outcomes are the projected results of one scenario. All figures are
// planning approximations, not guarantees; each scenario states its
// assumptions explicitly.
type Outcomes struct {
	PayoffDate      time.Time
	PayoffMonths    int
	TotalInterest   float64
	ProjectedScore  int
	MonthlyCashflow float64
	NetWorthDelta   float64
	Milestones      []Milestone
}

// Scenario is an independent forward hypothesis over the same profile.
// Probabilities describe likelihood per scenario and are not required to sum
// to one.
type Scenario struct {
	Name        string
	Description string
	Probability float64
	Assumptions []string
	Outcomes    Outcomes
}
