package service

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"strategy-engine/domain"
)

// StrategyService generates the named debt-elimination strategies for a
// profile. Each variant shares the same month-by-month payoff simulation and
// differs only in how it orders the obligations (and, for rate arbitrage, in
// the rates it assumes).
type StrategyService struct {
	opts Options
}

func NewStrategyService(opts Options) *StrategyService {
	return &StrategyService{opts: opts.withDefaults()}
}

// GenerateStrategies returns the strategy set ranked descending by total
// interest saved against the minimums-only baseline. A strategy whose
// schedule can never retire the debt is omitted, never fatal. A debt-free
// profile yields an empty list.
func (s *StrategyService) GenerateStrategies(profile domain.FinancialProfile) []domain.Strategy {
	if len(profile.Debts) == 0 || profile.TotalDebt <= 0 {
		return nil
	}

	minimums := profile.TotalMinimumPayments()
	budget := minimums + profile.PaymentCapacity

	// Baseline: minimums only, in statement order. Interest saved is
	// measured against this schedule. An unpayable baseline is capped at
	// the safety horizon so optimized strategies still rank sensibly.
	baseline, err := simulatePayoff(toDebtStates(profile.Debts), minimums)
	if err != nil {
		baseline = simResult{months: MaxPayoffMonths, totalInterest: profile.TotalDebt}
	}

	var strategies []domain.Strategy
	for _, gen := range []strategyGenerator{
		avalancheGenerator{},
		snowballGenerator{},
		rateArbitrageGenerator{},
		hybridGenerator{},
	} {
		strategy, err := gen.generate(profile, budget, baseline)
		if err != nil {
			var unpayable *UnpayableDebtError
			if errors.As(err, &unpayable) {
				log.Printf("Warning: strategy %q omitted: %v", gen.name(), err)
				continue
			}
			continue // ineligible for this profile
		}
		strategies = append(strategies, strategy)
	}

	sort.SliceStable(strategies, func(i, j int) bool {
		return strategies[i].InterestSaved > strategies[j].InterestSaved
	})
	return strategies
}

// errIneligible marks a variant that does not apply to the profile at all,
// as opposed to one that failed its schedule.
var errIneligible = errors.New("strategy not eligible for this profile")

type strategyGenerator interface {
	name() string
	generate(profile domain.FinancialProfile, budget float64, baseline simResult) (domain.Strategy, error)
}

type avalancheGenerator struct{}

func (avalancheGenerator) name() string { return "avalanche" }

func (avalancheGenerator) generate(profile domain.FinancialProfile, budget float64, baseline simResult) (domain.Strategy, error) {
	debts := toDebtStates(profile.Debts)
	sort.SliceStable(debts, func(i, j int) bool { return debts[i].ratePct > debts[j].ratePct })

	result, err := simulatePayoff(debts, budget)
	if err != nil {
		return domain.Strategy{}, err
	}
	return domain.Strategy{
		Name:           "avalanche",
		Description:    "Extra capacity attacks the highest-rate debt first, rolling into the next once a balance is retired. Mathematically the cheapest order.",
		MonthlyPayment: roundTo2Decimals(budget),
		PayoffMonths:   result.months,
		InterestSaved:  interestSaved(baseline, result),
		Priority:       "high",
		Requirements:   []string{"Discipline to hold the order even without early wins"},
		Risks:          []string{"First payoff may take a while, which tests motivation"},
	}, nil
}

type snowballGenerator struct{}

func (snowballGenerator) name() string { return "snowball" }

func (snowballGenerator) generate(profile domain.FinancialProfile, budget float64, baseline simResult) (domain.Strategy, error) {
	debts := toDebtStates(profile.Debts)
	sort.SliceStable(debts, func(i, j int) bool { return debts[i].balance < debts[j].balance })

	result, err := simulatePayoff(debts, budget)
	if err != nil {
		return domain.Strategy{}, err
	}
	return domain.Strategy{
		Name: "snowball",
		// Trades interest efficiency for earlier wins; that is the
		// point of the ordering, not a defect.
		Description:    "Smallest balance first for early, visible wins. Usually pays somewhat more interest than avalanche in exchange for momentum.",
		MonthlyPayment: roundTo2Decimals(budget),
		PayoffMonths:   result.months,
		InterestSaved:  interestSaved(baseline, result),
		Priority:       "medium",
		Requirements:   []string{"Works best when motivation from quick wins matters"},
		Risks:          []string{"Pays more total interest than the avalanche order"},
	}, nil
}

type rateArbitrageGenerator struct{}

func (rateArbitrageGenerator) name() string { return "rate-arbitrage" }

// generate models a 0%-introductory balance transfer: open credit-card
// balances move onto available revolving headroom at 0% plus a transfer fee,
// then the avalanche order runs over the adjusted book. Only offered with a
// strong score and actual headroom.
func (rateArbitrageGenerator) generate(profile domain.FinancialProfile, budget float64, baseline simResult) (domain.Strategy, error) {
	if profile.Credit == nil || profile.Credit.Score < ArbitrageScoreFloor {
		return domain.Strategy{}, errIneligible
	}
	headroom := profile.Credit.AvailableRevolvingCredit()
	if headroom <= 0 {
		return domain.Strategy{}, errIneligible
	}

	debts := toDebtStates(profile.Debts)
	transferred := false
	for i, d := range profile.Debts {
		if d.Type != domain.DebtCreditCard || d.Balance <= 0 || d.Balance > headroom {
			continue
		}
		// Whole-balance transfers only; splitting a balance across
		// cards is not modeled.
		debts[i].ratePct = 0
		debts[i].balance = d.Balance * (1 + TransferFeeRate)
		headroom -= d.Balance
		transferred = true
	}
	if !transferred {
		return domain.Strategy{}, errIneligible
	}
	sort.SliceStable(debts, func(i, j int) bool { return debts[i].ratePct > debts[j].ratePct })

	result, err := simulatePayoff(debts, budget)
	if err != nil {
		return domain.Strategy{}, err
	}
	return domain.Strategy{
		Name:           "rate-arbitrage",
		Description:    fmt.Sprintf("Moves eligible card balances to a 0%% introductory rate (%.0f%% transfer fee) and runs the avalanche order on what remains.", TransferFeeRate*100),
		MonthlyPayment: roundTo2Decimals(budget),
		PayoffMonths:   result.months,
		InterestSaved:  interestSaved(baseline, result),
		Priority:       "high",
		Requirements: []string{
			fmt.Sprintf("Credit score %d or higher", ArbitrageScoreFloor),
			"Available revolving credit to receive the transfers",
		},
		Risks: []string{
			"Transfer fees on every moved balance",
			"Promotional rate may expire before the payoff completes",
		},
	}, nil
}

type hybridGenerator struct{}

func (hybridGenerator) name() string { return "hybrid" }

func (hybridGenerator) generate(profile domain.FinancialProfile, budget float64, baseline simResult) (domain.Strategy, error) {
	debts := toDebtStates(profile.Debts)
	// Small balances jump the queue as quick wins; the rest keeps the
	// avalanche order.
	sort.SliceStable(debts, func(i, j int) bool {
		qi, qj := debts[i].balance <= QuickWinBalance, debts[j].balance <= QuickWinBalance
		if qi != qj {
			return qi
		}
		if qi {
			return debts[i].balance < debts[j].balance
		}
		return debts[i].ratePct > debts[j].ratePct
	})

	result, err := simulatePayoff(debts, budget)
	if err != nil {
		return domain.Strategy{}, err
	}
	return domain.Strategy{
		Name:           "hybrid",
		Description:    fmt.Sprintf("Clears balances under $%.0f first for momentum, then switches to the avalanche order for efficiency.", QuickWinBalance),
		MonthlyPayment: roundTo2Decimals(budget),
		PayoffMonths:   result.months,
		InterestSaved:  interestSaved(baseline, result),
		Priority:       "medium",
		Requirements:   []string{"Comfort with a two-stage payoff order"},
		Risks:          []string{"Slightly more interest than a pure avalanche"},
	}, nil
}

func toDebtStates(debts []domain.DebtObligation) []debtState {
	states := make([]debtState, len(debts))
	for i, d := range debts {
		states[i] = debtState{
			creditor: d.Creditor,
			balance:  d.Balance,
			ratePct:  d.AnnualRatePct,
			minimum:  d.MinimumPayment,
		}
	}
	return states
}

func interestSaved(baseline, result simResult) float64 {
	saved := baseline.totalInterest - result.totalInterest
	if saved < 0 {
		return 0
	}
	return roundTo2Decimals(saved)
}

// projectCreditScore applies the additive projection model: utilization
// recovery contributes up to UtilizationPointCap points when utilization sits
// over the target, plus a small payment-history increment per on-time month.
// Capped at the score ceiling.
func projectCreditScore(current int, months int, utilizationPct float64) int {
	utilizationGain := 0.0
	if utilizationPct > UtilizationTarget {
		utilizationGain = (utilizationPct - UtilizationTarget) * UtilizationPointScale
		if utilizationGain > UtilizationPointCap {
			utilizationGain = UtilizationPointCap
		}
	}
	projected := current + int(utilizationGain+float64(months)*HistoryPointsPerMonth)
	if projected > MaxCreditScore {
		return MaxCreditScore
	}
	return projected
}
