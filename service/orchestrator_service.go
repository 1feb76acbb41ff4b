package service

import (
	"fmt"
	"math"

	"strategy-engine/domain"
)

// OrchestratorService is the join point of the pipeline: it reads the
// profile plus both calculator outputs and synthesizes the single plan
// returned to callers. It always produces a usable Plan; missing inputs
// degrade confidence instead of failing.
type OrchestratorService struct {
	opts Options
}

func NewOrchestratorService(opts Options) *OrchestratorService {
	return &OrchestratorService{opts: opts.withDefaults()}
}

const (
	degradedSuccessProbability = 0.25
	degradedConfidence         = 0.2
	riskPenaltyPerEntry        = 0.05
)

// Synthesize builds the final plan from the top-ranked strategy and the
// optimized scenario. The success probability is a deterministic function of
// data completeness, income stability and the chosen strategy's risk count:
//
//	p = clamp(0.35 + 0.35*completeness + 0.30*stability - 0.05*len(risks), 0.05, 0.99)
//
// A debt-free profile short-circuits to the defined ceiling of 1.0.
func (s *OrchestratorService) Synthesize(
	profile domain.FinancialProfile,
	strategies []domain.Strategy,
	scenarios []domain.Scenario,
) domain.Plan {

	if profile.TotalDebt <= 0 {
		return s.debtFreePlan(profile)
	}
	if len(strategies) == 0 || len(scenarios) == 0 {
		return s.degradedPlan(profile, strategies, scenarios)
	}

	primary := strategies[0]
	optimized := findScenario(scenarios, "optimized")

	completeness := dataCompleteness(profile)
	stability := incomeStability(profile.Incomes)
	probability := clamp(
		0.35+0.35*completeness+0.30*stability-riskPenaltyPerEntry*float64(len(primary.Risks)),
		0.05, 0.99,
	)
	confidence := clamp((completeness+stability)/2, 0.05, 0.99)

	plan := domain.Plan{
		Summary: fmt.Sprintf(
			"Adopt the %s strategy at $%.2f/month: debt-free in %d months, saving $%.2f in interest against the current schedule.",
			primary.Name, primary.MonthlyPayment, primary.PayoffMonths, primary.InterestSaved,
		),
		PriorityActions:    s.priorityActions(profile, primary, optimized),
		Risks:              s.riskMitigations(profile, stability),
		Phases:             s.phases(primary),
		Monitoring:         s.monitoring(profile),
		SuccessProbability: probability,
		Confidence:         confidence,
	}
	for _, d := range profile.Discrepancies {
		plan.Advisories = append(plan.Advisories, d.Description)
	}
	return plan
}

func (s *OrchestratorService) priorityActions(
	profile domain.FinancialProfile,
	primary domain.Strategy,
	optimized *domain.Scenario,
) []domain.PriorityAction {

	actions := []domain.PriorityAction{{
		Action:          fmt.Sprintf("Adopt the %s payoff order with $%.2f/month committed", primary.Name, primary.MonthlyPayment),
		Priority:        "critical",
		Dependencies:    []string{"Payment capacity confirmed against the monthly budget"},
		ExpectedOutcome: fmt.Sprintf("Debt retired in %d months, $%.2f interest saved", primary.PayoffMonths, primary.InterestSaved),
	}}

	if profile.Utilization() > UtilizationTarget {
		actions = append(actions, domain.PriorityAction{
			Action:          fmt.Sprintf("Pay revolving balances below %.0f%% utilization", UtilizationTarget),
			Priority:        "high",
			ExpectedOutcome: "Immediate credit score improvement",
		})
	}

	if achievable := s.opts.AchievableRate(profile.CreditScore()); optimized != nil && achievable < profile.AverageRate() {
		actions = append(actions, domain.PriorityAction{
			Action:          fmt.Sprintf("Pursue consolidation at the %.1f%% achievable rate", achievable),
			Priority:        "high",
			Dependencies:    []string{"Credit score verified", "Lender offers compared"},
			ExpectedOutcome: "Interest cost drops to the optimized scenario's projection",
		})
	}

	if profile.Credit != nil && profile.Credit.Score >= ArbitrageScoreFloor && profile.Credit.AvailableRevolvingCredit() > 0 {
		actions = append(actions, domain.PriorityAction{
			Action:          "Move high-rate card balances onto a promotional balance transfer",
			Priority:        "high",
			Dependencies:    []string{"Transfer offer with fee below the interest it avoids"},
			ExpectedOutcome: "High-rate balances accrue at the promotional rate instead",
		})
	}

	actions = append(actions, domain.PriorityAction{
		Action:          "Enable credit, rate and spending monitoring with the plan's alert rules",
		Priority:        "high",
		Dependencies:    []string{"Plan accepted"},
		ExpectedOutcome: "Early warning on anything that invalidates the schedule",
	})

	if profile.AverageRate() > HighRateThreshold && profile.CreditScore() > 0 {
		actions = append(actions, domain.PriorityAction{
			Action:          fmt.Sprintf("Negotiate rates on the highest-interest accounts (a %d score gives leverage)", profile.CreditScore()),
			Priority:        "medium",
			ExpectedOutcome: "Lower ongoing interest without restructuring",
		})
	}

	return actions
}

func (s *OrchestratorService) riskMitigations(profile domain.FinancialProfile, stability float64) []domain.RiskMitigation {
	risks := []domain.RiskMitigation{{
		Risk:        "Unexpected expenses interrupt the payment schedule",
		Probability: 0.4,
		Impact:      "medium",
		Mitigation:  "Hold a small buffer before committing the full capacity; resume the schedule the following month",
	}}

	if stability < 0.8 {
		risks = append(risks, domain.RiskMitigation{
			Risk:        "Income instability reduces payment capacity",
			Probability: roundTo2Decimals(math.Min(0.9, 1-stability)),
			Impact:      "high",
			Mitigation:  "Build a one-month expense fund before accelerating payments",
		})
	}

	risks = append(risks, domain.RiskMitigation{
		Risk:        "Interest rates rise on variable-rate balances",
		Probability: 0.4,
		Impact:      "medium",
		Mitigation:  "Lock fixed rates through consolidation where the achievable rate beats the current one",
	})

	if risk := creditRisk(profile.Credit); risk > 0.3 {
		risks = append(risks, domain.RiskMitigation{
			Risk:        "Credit score deterioration closes refinancing options",
			Probability: roundTo2Decimals(risk),
			Impact:      "high",
			Mitigation:  "Keep utilization under the target and every payment on time",
		})
	}

	return risks
}

// phases lays the payoff out as foundation -> execution -> optimization with
// explicit monthly durations derived from the primary strategy's timeline.
func (s *OrchestratorService) phases(primary domain.Strategy) []domain.Phase {
	payoff := primary.PayoffMonths
	if payoff < 3 {
		payoff = 3
	}
	execution := int(float64(payoff) * 0.6)
	if execution < 1 {
		execution = 1
	}
	optimization := payoff - 1 - execution
	if optimization < 1 {
		optimization = 1
	}

	return []domain.Phase{
		{
			Number:     1,
			Name:       "Foundation",
			Months:     1,
			Objectives: []string{"Lock in the payment schedule", "Stand up monitoring"},
			Actions: []string{
				"Automate the committed monthly payment",
				"Enable the plan's alert rules",
				"Confirm the living-expense budget leaves the stated capacity",
			},
			Responsible: []string{"account holder"},
		},
		{
			Number:     2,
			Name:       "Execution",
			Months:     execution,
			Objectives: []string{"Work the payoff order", "Protect the credit score"},
			Actions: []string{
				fmt.Sprintf("Follow the %s order, rolling freed payments forward", primary.Name),
				"Keep utilization trending toward the target",
				"Review progress against milestones monthly",
			},
			Responsible: []string{"account holder", "advisor"},
		},
		{
			Number:     3,
			Name:       "Optimization",
			Months:     optimization,
			Objectives: []string{"Exploit the improved profile", "Finish the payoff"},
			Actions: []string{
				"Refinance remaining balances if the achievable rate has dropped",
				"Retire the final obligations",
				"Redirect the freed budget toward savings",
			},
			Responsible: []string{"account holder", "advisor"},
		},
	}
}

func (s *OrchestratorService) monitoring(profile domain.FinancialProfile) domain.Monitoring {
	m := domain.Monitoring{
		Credit:        profile.Credit != nil,
		Rate:          len(profile.Debts) > 0,
		Income:        len(profile.Incomes) > 0,
		Spending:      true,
		Opportunity:   profile.CreditScore() >= 650,
		ReportCadence: "monthly",
		Alerts: []domain.AlertRule{
			{
				Signal:    "credit_change",
				Condition: "credit score moves by more than the threshold in either direction",
				Threshold: 10,
				Priority:  "high",
			},
			{
				Signal:    "rate_change",
				Condition: "achievable consolidation rate drops by more than the threshold",
				Threshold: 0.5,
				Priority:  "medium",
			},
			{
				Signal:    "spending_alert",
				Condition: "monthly spending exceeds the living-expense budget by more than the threshold percent",
				Threshold: 20,
				Priority:  "high",
			},
		},
	}
	if m.Opportunity {
		m.Alerts = append(m.Alerts, domain.AlertRule{
			Signal:    "opportunity",
			Condition: "promotional balance transfer offers matching the profile appear",
			Threshold: 0,
			Priority:  "medium",
		})
	}
	return m
}

// debtFreePlan handles the degenerate no-debt case: nothing to optimize, so
// the success probability sits at its defined ceiling.
func (s *OrchestratorService) debtFreePlan(profile domain.FinancialProfile) domain.Plan {
	plan := domain.Plan{
		Summary: "No outstanding debt: maintain current habits and redirect capacity toward savings.",
		PriorityActions: []domain.PriorityAction{{
			Action:          "Redirect monthly payment capacity into savings",
			Priority:        "medium",
			ExpectedOutcome: "Capacity compounds instead of servicing debt",
		}},
		Phases: []domain.Phase{{
			Number:      1,
			Name:        "Maintain",
			Months:      s.opts.ForecastHorizon,
			Objectives:  []string{"Preserve the debt-free position"},
			Actions:     []string{"Keep utilization low", "Review the profile quarterly"},
			Responsible: []string{"account holder"},
		}},
		Monitoring:         s.monitoring(profile),
		SuccessProbability: 1.0,
		Confidence:         clamp(dataCompleteness(profile), 0.05, 0.99),
	}
	for _, d := range profile.Discrepancies {
		plan.Advisories = append(plan.Advisories, d.Description)
	}
	return plan
}

// degradedPlan is the conservative fallback when either calculator produced
// nothing usable. Downstream consumers always receive a Plan.
func (s *OrchestratorService) degradedPlan(
	profile domain.FinancialProfile,
	strategies []domain.Strategy,
	scenarios []domain.Scenario,
) domain.Plan {

	advisories := []string{}
	if len(strategies) == 0 {
		advisories = append(advisories, "no viable payoff strategy could be computed; minimum payments may not cover accruing interest")
	}
	if len(scenarios) == 0 {
		advisories = append(advisories, "no forward scenario could be projected from the supplied documents")
	}
	for _, d := range profile.Discrepancies {
		advisories = append(advisories, d.Description)
	}

	return domain.Plan{
		Summary: "Insufficient basis for an optimized plan: stabilize the budget and re-run the analysis with complete documents.",
		PriorityActions: []domain.PriorityAction{
			{
				Action:          "Cover every minimum payment on time",
				Priority:        "critical",
				ExpectedOutcome: "No new delinquencies while the situation is assessed",
			},
			{
				Action:          "Increase monthly payment capacity through spending review or added income",
				Priority:        "high",
				ExpectedOutcome: "A viable payoff schedule becomes computable",
			},
		},
		Risks: []domain.RiskMitigation{{
			Risk:        "Balances grow while no payoff schedule is in place",
			Probability: 0.6,
			Impact:      "high",
			Mitigation:  "Contact creditors about hardship options before balances compound",
		}},
		Phases: []domain.Phase{{
			Number:      1,
			Name:        "Stabilize",
			Months:      3,
			Objectives:  []string{"Stop the situation from worsening"},
			Actions:     []string{"Hold all minimum payments", "Gather complete documents", "Re-run the analysis"},
			Responsible: []string{"account holder"},
		}},
		Monitoring:         s.monitoring(profile),
		SuccessProbability: degradedSuccessProbability,
		Confidence:         degradedConfidence,
		Advisories:         advisories,
	}
}

// dataCompleteness scores how much of the document picture is present: 0.3
// per record type plus 0.1 for the derived cross-references that exist on
// every built profile.
func dataCompleteness(profile domain.FinancialProfile) float64 {
	completeness := 0.1
	if profile.Credit != nil {
		completeness += 0.3
	}
	if len(profile.Incomes) > 0 {
		completeness += 0.3
	}
	if len(profile.Debts) > 0 {
		completeness += 0.3
	}
	return completeness
}

// incomeStability inverts the coefficient of variation of historical net
// incomes: 1 is perfectly steady. Fewer than two records give the neutral
// 0.5.
func incomeStability(incomes []domain.IncomeRecord) float64 {
	if len(incomes) < 2 {
		return 0.5
	}
	mean := 0.0
	for _, r := range incomes {
		mean += r.NetPay
	}
	mean /= float64(len(incomes))
	if mean <= 0 {
		return 0
	}
	variance := 0.0
	for _, r := range incomes {
		variance += (r.NetPay - mean) * (r.NetPay - mean)
	}
	variance /= float64(len(incomes))
	return math.Max(0, 1-math.Sqrt(variance)/mean)
}

// creditRisk mirrors the additive report-risk model: weak score, heavy
// utilization, inquiry churn and public records each add weight.
func creditRisk(credit *domain.CreditRecord) float64 {
	if credit == nil {
		return 0.5
	}
	risk := 0.0
	if credit.Score < 600 {
		risk += 0.4
	}
	if credit.Utilization() > 50 {
		risk += 0.3
	}
	if len(credit.Inquiries) > 3 {
		risk += 0.2
	}
	if len(credit.PublicRecords) > 0 {
		risk += 0.3
	}
	return math.Min(1, risk)
}

func findScenario(scenarios []domain.Scenario, name string) *domain.Scenario {
	for i := range scenarios {
		if scenarios[i].Name == name {
			return &scenarios[i]
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
