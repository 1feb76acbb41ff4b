package domain

type DiscrepancyType string

const (
	DiscrepancyInsufficientData DiscrepancyType = "insufficient_data"
	DiscrepancyIncomeMismatch   DiscrepancyType = "income_mismatch"
	DiscrepancyDebtMismatch     DiscrepancyType = "debt_mismatch"
	DiscrepancyUnknownFrequency DiscrepancyType = "unknown_frequency"
	DiscrepancyPublicRecord     DiscrepancyType = "public_record"
)

// Discrepancy is a non-fatal advisory attached to a profile. It downgrades
// confidence downstream but never blocks the analysis.
type Discrepancy struct {
	Type           DiscrepancyType
	Description    string
	Severity       string // low, medium, high
	Recommendation string
}

// FinancialProfile is the merged view over all supplied documents. It is
// built once per analysis run and treated as read-only afterwards; the
// calculators may run concurrently against it because nothing mutates it.
type FinancialProfile struct {
	Credit          *CreditRecord
	Incomes         []IncomeRecord // most-recent-first
	Debts           []DebtObligation
	MonthlyIncome   float64
	TotalDebt       float64
	DebtToIncome    float64
	PaymentCapacity float64
	Discrepancies   []Discrepancy
}

// TotalMinimumPayments sums the stated minimums across all obligations.
func (p FinancialProfile) TotalMinimumPayments() float64 {
	total := 0.0
	for _, d := range p.Debts {
		total += d.MinimumPayment
	}
	return total
}

// AverageRate is the plain average annual rate across obligations, zero when
// there are none.
func (p FinancialProfile) AverageRate() float64 {
	if len(p.Debts) == 0 {
		return 0
	}
	total := 0.0
	for _, d := range p.Debts {
		total += d.AnnualRatePct
	}
	return total / float64(len(p.Debts))
}

// CreditScore returns the report score, or zero when no report was supplied.
func (p FinancialProfile) CreditScore() int {
	if p.Credit == nil {
		return 0
	}
	return p.Credit.Score
}

// Utilization returns overall revolving utilization percent, zero without a
// credit record.
func (p FinancialProfile) Utilization() float64 {
	if p.Credit == nil {
		return 0
	}
	return p.Credit.Utilization()
}
