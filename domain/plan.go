package domain

// PriorityAction is one ranked step in the synthesized plan.
type PriorityAction struct {
	Action          string
	Priority        string // critical, high, medium, low
	Dependencies    []string `json:",omitempty"`
	ExpectedOutcome string
}

// RiskMitigation pairs a risk with its probability, impact and counter-move.
type RiskMitigation struct {
	Risk        string
	Probability float64
	Impact      string // high, medium, low
	Mitigation  string
}

// Phase is one stage of the implementation timeline.
type Phase struct {
	Number      int
	Name        string
	Months      int
	Objectives  []string
	Actions     []string
	Responsible []string
}

// AlertRule describes one monitoring trigger.
type AlertRule struct {
	Signal    string // credit_change, rate_change, income_change, spending_alert, opportunity
	Condition string
	Threshold float64
	Priority  string
}

// Monitoring configures which signals the caller should watch after
// adopting the plan.
type Monitoring struct {
	Credit        bool
	Rate          bool
	Income        bool
	Spending      bool
	Opportunity   bool
	Alerts        []AlertRule
	ReportCadence string
}

// Plan is the terminal artifact of an analysis run: the orchestrator's
// synthesis of the strategy set and the scenario set. It is immutable once
// returned.
type Plan struct {
	Summary            string
	PriorityActions    []PriorityAction
	Risks              []RiskMitigation
	Phases             []Phase
	Monitoring         Monitoring
	SuccessProbability float64
	Confidence         float64
	Advisories         []string `json:",omitempty"`
}
