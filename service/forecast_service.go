package service

import (
	"fmt"
	"log"
	"math"
	"time"

	"strategy-engine/domain"
)

// ForecastService projects named what-if scenarios over a profile. Each
// scenario is an independent hypothesis: same profile, different assumed
// payment and rate, re-run through the same amortization math the strategy
// calculator uses. Probabilities describe per-scenario likelihood and do not
// partition.
type ForecastService struct {
	opts Options
}

func NewForecastService(opts Options) *ForecastService {
	return &ForecastService{opts: opts.withDefaults()}
}

// scenarioShape parameterizes one scenario before projection.
type scenarioShape struct {
	name        string
	description string
	probability float64
	payment     float64
	ratePct     float64
	assumptions []string
	checkpoints []checkpoint
}

type checkpoint struct {
	fraction    float64
	label       string
	impact      string
	probability float64
}

// GenerateScenarios returns the status-quo, optimized and maximum-
// optimization projections, in that order. A scenario whose payment can never
// retire the debt is dropped with a warning rather than failing the run.
// asOf anchors the projected dates so identical inputs produce identical
// scenarios.
func (s *ForecastService) GenerateScenarios(profile domain.FinancialProfile, asOf time.Time) []domain.Scenario {
	minimums := profile.TotalMinimumPayments()
	capacity := profile.PaymentCapacity
	score := profile.CreditScore()
	achievable := s.opts.AchievableRate(score)

	shapes := []scenarioShape{
		{
			name:        "status-quo",
			description: "Current habits continue: minimum payments at today's rates.",
			probability: 0.4,
			payment:     minimums,
			ratePct:     profile.AverageRate(),
			assumptions: []string{
				"No change to current spending patterns",
				"Minimum payments only",
				"Current interest rates persist",
			},
			checkpoints: []checkpoint{
				{0.25, "25% of debt eliminated", "Credit utilization begins to improve", 0.8},
				{0.50, "Half of the debt eliminated", "Significant credit score improvement", 0.7},
				{0.75, "75% of debt eliminated", "Qualifies for better rates", 0.6},
			},
		},
		{
			name:        "optimized",
			description: "Full payment capacity applied at the rate this credit score can obtain.",
			probability: 0.7,
			payment:     minimums + capacity,
			ratePct:     achievable,
			assumptions: []string{
				"Payment capacity committed to debt every month",
				fmt.Sprintf("Consolidation at the %.1f%% achievable rate", achievable),
				"On-time payment history maintained",
			},
			checkpoints: []checkpoint{
				{0.20, "First debt eliminated", "Freed payment rolls into the next target", 0.9},
				{0.40, "Credit score improvement visible", "Better refinancing terms open up", 0.8},
				{0.60, "Major debt reduction", "Interest burden substantially reduced", 0.7},
			},
		},
		{
			name:        "maximum-optimization",
			description: "Aggressive path: stretched payment capacity plus the achievable consolidation rate.",
			probability: 0.5,
			payment:     minimums + capacity*1.2,
			ratePct:     achievable,
			assumptions: []string{
				"Payment capacity stretched 20% through spending cuts",
				fmt.Sprintf("Consolidation at the %.1f%% achievable rate", achievable),
				"Perfect payment history maintained",
				"No unexpected expenses interrupt the schedule",
			},
			checkpoints: []checkpoint{
				{0.20, "First debt eliminated", "Freed payment rolls into the next target", 0.9},
				{0.40, "Credit score improvement visible", "Better refinancing terms open up", 0.8},
				{0.60, "Major debt reduction", "Interest burden substantially reduced", 0.7},
			},
		},
	}

	scenarios := make([]domain.Scenario, 0, len(shapes))
	for _, shape := range shapes {
		scenario, err := s.project(profile, shape, asOf)
		if err != nil {
			log.Printf("Warning: scenario %q omitted: %v", shape.name, err)
			continue
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios
}

func (s *ForecastService) project(profile domain.FinancialProfile, shape scenarioShape, asOf time.Time) (domain.Scenario, error) {
	var months int
	var interest float64
	if profile.TotalDebt > 0 {
		var err error
		months, interest, err = totalInterestFor(profile.TotalDebt, shape.payment, shape.ratePct)
		if err != nil {
			return domain.Scenario{}, err
		}
	}

	// The projection clamps to the forecast horizon: the score model and
	// net-worth approximation are not credible past it.
	horizon := s.opts.ForecastHorizon
	projectedMonths := months
	if projectedMonths > horizon {
		projectedMonths = horizon
	}

	livingExpenses := s.opts.LivingExpenseRatio * profile.MonthlyIncome
	cashflow := roundTo2Decimals(profile.MonthlyIncome - livingExpenses - shape.payment)

	// Net-worth delta is an explicit approximation: a tenth of income
	// saved per month, less whatever debt remains at the horizon.
	netWorth := profile.MonthlyIncome * 0.1 * float64(projectedMonths)
	if months > horizon && months > 0 {
		remaining := profile.TotalDebt * (1 - float64(horizon)/float64(months))
		netWorth -= remaining
	}

	var milestones []domain.Milestone
	for _, cp := range shape.checkpoints {
		month := int(math.Ceil(float64(months) * cp.fraction))
		if month <= 0 {
			continue
		}
		milestones = append(milestones, domain.Milestone{
			Month:       month,
			Label:       cp.label,
			Impact:      cp.impact,
			Probability: cp.probability,
		})
	}

	return domain.Scenario{
		Name:        shape.name,
		Description: shape.description,
		Probability: shape.probability,
		Assumptions: shape.assumptions,
		Outcomes: domain.Outcomes{
			PayoffDate:      asOf.AddDate(0, months, 0),
			PayoffMonths:    months,
			TotalInterest:   interest,
			ProjectedScore:  projectCreditScore(profile.CreditScore(), projectedMonths, profile.Utilization()),
			MonthlyCashflow: cashflow,
			NetWorthDelta:   roundTo2Decimals(netWorth),
			Milestones:      milestones,
		},
	}, nil
}
