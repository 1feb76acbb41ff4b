package service

import (
	"fmt"
	"math"
	"sort"

	"strategy-engine/domain"
)

// ProfileService merges independently extracted documents into one
// FinancialProfile. Build is a pure function: it validates, selects, derives
// and flags, and never mutates its inputs.
type ProfileService struct {
	opts Options
}

func NewProfileService(opts Options) *ProfileService {
	return &ProfileService{opts: opts.withDefaults()}
}

// Build validates the records, picks the most recent credit report, derives
// the cross-document metrics and collects discrepancies. Validation failures
// return an *InputError; everything softer becomes a non-fatal discrepancy on
// the profile.
func (s *ProfileService) Build(
	credit []domain.CreditRecord,
	incomes []domain.IncomeRecord,
	debts []domain.DebtObligation,
) (domain.FinancialProfile, error) {

	if err := validateDocuments(credit, incomes, debts); err != nil {
		return domain.FinancialProfile{}, err
	}

	var discrepancies []domain.Discrepancy

	// Most recent report wins; scores are never averaged across bureaus.
	var creditRecord *domain.CreditRecord
	for i := range credit {
		if creditRecord == nil || credit[i].ReportDate.After(creditRecord.ReportDate) {
			c := credit[i]
			creditRecord = &c
		}
	}
	if creditRecord == nil {
		discrepancies = append(discrepancies, domain.Discrepancy{
			Type:           domain.DiscrepancyInsufficientData,
			Description:    "no credit report supplied; utilization and transfer eligibility cannot be assessed",
			Severity:       "medium",
			Recommendation: "provide a recent credit report from any bureau",
		})
	}

	sortedIncomes := make([]domain.IncomeRecord, len(incomes))
	copy(sortedIncomes, incomes)
	sort.SliceStable(sortedIncomes, func(i, j int) bool {
		return sortedIncomes[i].PayDate.After(sortedIncomes[j].PayDate)
	})

	monthlyIncome := 0.0
	if len(sortedIncomes) == 0 {
		discrepancies = append(discrepancies, domain.Discrepancy{
			Type:           domain.DiscrepancyInsufficientData,
			Description:    "no pay stubs supplied; payment capacity assumed zero",
			Severity:       "high",
			Recommendation: "provide at least one recent pay stub",
		})
	} else {
		latest := sortedIncomes[0]
		monthlyIncome = latest.MonthlyNet()
		if !latest.Frequency.Known() {
			discrepancies = append(discrepancies, domain.Discrepancy{
				Type:           domain.DiscrepancyUnknownFrequency,
				Description:    fmt.Sprintf("pay frequency %q not recognized; bi-weekly assumed", latest.Frequency),
				Severity:       "low",
				Recommendation: "confirm how often this employer pays",
			})
		}
	}

	profileDebts := make([]domain.DebtObligation, len(debts))
	copy(profileDebts, debts)

	totalDebt := 0.0
	minimums := 0.0
	for _, d := range profileDebts {
		totalDebt += d.Balance
		minimums += d.MinimumPayment
	}

	capacity := monthlyIncome - minimums - s.opts.LivingExpenseRatio*monthlyIncome
	if capacity < 0 {
		capacity = 0
	}

	debtToIncome := 0.0
	if monthlyIncome > 0 {
		debtToIncome = totalDebt / monthlyIncome
	}

	discrepancies = append(discrepancies, s.crossCheck(creditRecord, sortedIncomes, profileDebts)...)

	return domain.FinancialProfile{
		Credit:          creditRecord,
		Incomes:         sortedIncomes,
		Debts:           profileDebts,
		MonthlyIncome:   roundTo2Decimals(monthlyIncome),
		TotalDebt:       roundTo2Decimals(totalDebt),
		DebtToIncome:    debtToIncome,
		PaymentCapacity: roundTo2Decimals(capacity),
		Discrepancies:   discrepancies,
	}, nil
}

// crossCheck compares the documents against each other and flags
// disagreements beyond the configured tolerance. Advisories only.
func (s *ProfileService) crossCheck(
	credit *domain.CreditRecord,
	incomes []domain.IncomeRecord,
	debts []domain.DebtObligation,
) []domain.Discrepancy {

	var found []domain.Discrepancy

	if credit != nil && len(debts) > 0 {
		reported := credit.TotalBalance()
		declared := 0.0
		for _, d := range debts {
			declared += d.Balance
		}
		if ref := math.Max(reported, declared); ref > 0 {
			if diff := math.Abs(reported - declared) / ref; diff > s.opts.DiscrepancyTolerance {
				severity := "medium"
				if diff > 2*s.opts.DiscrepancyTolerance {
					severity = "high"
				}
				found = append(found, domain.Discrepancy{
					Type:           domain.DiscrepancyDebtMismatch,
					Description:    fmt.Sprintf("credit report balances ($%.2f) and debt statements ($%.2f) disagree by %.0f%%", reported, declared, diff*100),
					Severity:       severity,
					Recommendation: "verify that every open account appears in both sources",
				})
			}
		}
	}

	if len(incomes) >= 2 {
		newest, previous := incomes[0].MonthlyNet(), incomes[1].MonthlyNet()
		if ref := math.Max(newest, previous); ref > 0 {
			if diff := math.Abs(newest-previous) / ref; diff > s.opts.DiscrepancyTolerance {
				found = append(found, domain.Discrepancy{
					Type:           domain.DiscrepancyIncomeMismatch,
					Description:    fmt.Sprintf("net income varies %.0f%% between the two most recent pay stubs", diff*100),
					Severity:       "medium",
					Recommendation: "confirm whether income is variable or a stub is outdated",
				})
			}
		}
	}

	if credit != nil {
		for _, rec := range credit.PublicRecords {
			if rec.Status == "active" {
				found = append(found, domain.Discrepancy{
					Type:           domain.DiscrepancyPublicRecord,
					Description:    fmt.Sprintf("active public record (%s) on the credit report", rec.Kind),
					Severity:       "high",
					Recommendation: "resolve or dispute the record before pursuing new credit",
				})
			}
		}
	}

	return found
}

func validateDocuments(
	credit []domain.CreditRecord,
	incomes []domain.IncomeRecord,
	debts []domain.DebtObligation,
) error {
	for i, c := range credit {
		if c.Score < 0 || c.Score > MaxCreditScore {
			return inputErrorf(fmt.Sprintf("credit[%d].score", i), "score %d outside [0, %d]", c.Score, MaxCreditScore)
		}
		for j, a := range c.Accounts {
			if a.Balance < 0 {
				return inputErrorf(fmt.Sprintf("credit[%d].accounts[%d].balance", i, j), "negative balance %.2f", a.Balance)
			}
			if a.CreditLimit < 0 {
				return inputErrorf(fmt.Sprintf("credit[%d].accounts[%d].creditLimit", i, j), "negative limit %.2f", a.CreditLimit)
			}
		}
	}
	for i, r := range incomes {
		if r.GrossPay < 0 {
			return inputErrorf(fmt.Sprintf("income[%d].grossPay", i), "negative gross pay %.2f", r.GrossPay)
		}
		if r.NetPay < 0 {
			return inputErrorf(fmt.Sprintf("income[%d].netPay", i), "negative net pay %.2f", r.NetPay)
		}
		if r.NetPay > r.GrossPay {
			return inputErrorf(fmt.Sprintf("income[%d].netPay", i), "net pay %.2f exceeds gross pay %.2f", r.NetPay, r.GrossPay)
		}
	}
	if len(debts) > MaxDebtsPerRequest {
		return inputErrorf("debt", "%d obligations exceeds the maximum of %d", len(debts), MaxDebtsPerRequest)
	}
	for i, d := range debts {
		if d.Balance < 0 {
			return inputErrorf(fmt.Sprintf("debt[%d].balance", i), "negative balance %.2f", d.Balance)
		}
		if d.Balance > MaxDebtAmount {
			return inputErrorf(fmt.Sprintf("debt[%d].balance", i), "balance exceeds the maximum of $%.2f", MaxDebtAmount)
		}
		if d.MinimumPayment < 0 {
			return inputErrorf(fmt.Sprintf("debt[%d].minimumPayment", i), "negative minimum payment %.2f", d.MinimumPayment)
		}
		if d.AnnualRatePct < 0 || d.AnnualRatePct > MaxInterestRate {
			return inputErrorf(fmt.Sprintf("debt[%d].annualRatePct", i), "rate %.2f outside [0, %.0f]", d.AnnualRatePct, MaxInterestRate)
		}
	}
	return nil
}
