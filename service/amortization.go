package service

import "math"

// roundTo2Decimals rounds a float64 to 2 decimals.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// payoffMonths is the closed-form amortization time for a single balance:
// months = -ln(1 - B*r/P) / ln(1+r), with r the monthly periodic rate. A zero
// rate degrades to B/P. A payment that covers no principal (P <= 0, or
// P <= B*r) can never retire the balance and is reported as unpayable rather
// than returned as infinity or NaN.
func payoffMonths(balance, payment, annualRatePct float64) (float64, error) {
	if balance <= 0 {
		return 0, nil
	}
	if payment <= 0 {
		return 0, &UnpayableDebtError{Payment: payment}
	}
	r := annualRatePct / 100 / 12
	if r == 0 {
		return balance / payment, nil
	}
	if payment <= balance*r {
		return 0, &UnpayableDebtError{Payment: payment}
	}
	return -math.Log(1-balance*r/payment) / math.Log(1+r), nil
}

// totalInterestFor is the interest paid over a closed-form payoff, using the
// rounded-up month count so the figure matches whole payment cycles.
func totalInterestFor(balance, payment, annualRatePct float64) (months int, interest float64, err error) {
	m, err := payoffMonths(balance, payment, annualRatePct)
	if err != nil {
		return 0, 0, err
	}
	months = int(math.Ceil(m))
	interest = roundTo2Decimals(float64(months)*payment - balance)
	if interest < 0 {
		interest = 0
	}
	return months, interest, nil
}

// debtState tracks one obligation through the month-by-month simulation.
type debtState struct {
	creditor string
	balance  float64
	ratePct  float64
	minimum  float64
}

type simResult struct {
	months        int
	totalInterest float64
}

// simulatePayoff plays a fixed monthly budget against the debts in priority
// order: minimums (or at least the accrued interest) first, then the whole
// surplus against the first still-open debt. When a debt closes its share of
// the budget rolls into the next one automatically.
//
// The slice order IS the strategy; callers sort before calling.
func simulatePayoff(debts []debtState, monthlyBudget float64) (simResult, error) {
	if monthlyBudget <= 0 {
		return simResult{}, &UnpayableDebtError{Payment: monthlyBudget}
	}

	// Work on a copy so a strategy run never leaks state into the next.
	working := make([]debtState, len(debts))
	copy(working, debts)

	totalInterest := 0.0
	month := 0
	for {
		month++
		available := monthlyBudget

		// First pass: accrue interest and pay the required minimums.
		interest := make([]float64, len(working))
		for i := range working {
			if working[i].balance <= 0 {
				continue
			}
			monthlyRate := working[i].ratePct / 100 / 12
			interest[i] = working[i].balance * monthlyRate
			totalInterest += interest[i]
		}
		for i := range working {
			if working[i].balance <= 0 {
				continue
			}
			// The effective minimum must at least cover the accrued
			// interest or the balance only grows.
			required := working[i].minimum
			if required < interest[i] {
				required = interest[i]
			}
			if payoff := working[i].balance + interest[i]; required > payoff {
				required = payoff
			}
			if required > available {
				required = available
			}
			if required <= 0 {
				continue
			}
			principal := required - interest[i]
			if principal > 0 {
				working[i].balance -= principal
				if working[i].balance < 0 {
					working[i].balance = 0
				}
			}
			available -= required
		}

		// Second pass: surplus attacks the first open debt in order.
		if available > 0 {
			for i := range working {
				if working[i].balance <= 0 {
					continue
				}
				extra := available
				if extra > working[i].balance {
					extra = working[i].balance
				}
				working[i].balance -= extra
				break
			}
		}

		retired := true
		for i := range working {
			if working[i].balance > BalanceTolerance {
				retired = false
				break
			}
		}
		if retired {
			return simResult{months: month, totalInterest: roundTo2Decimals(totalInterest)}, nil
		}
		if month >= MaxPayoffMonths {
			return simResult{}, &UnpayableDebtError{Payment: monthlyBudget}
		}
	}
}
