package domain

import "time"

// PayFrequency is how often a pay stub is issued.
type PayFrequency string

const (
	PayWeekly      PayFrequency = "weekly"
	PayBiWeekly    PayFrequency = "bi-weekly"
	PaySemiMonthly PayFrequency = "semi-monthly"
	PayMonthly     PayFrequency = "monthly"
)

// monthlyMultiplier converts one pay period to a monthly equivalent.
// The bool is false for an unrecognized frequency.
func (f PayFrequency) monthlyMultiplier() (float64, bool) {
	switch f {
	case PayWeekly:
		return 4.33, true
	case PayBiWeekly:
		return 2.17, true
	case PaySemiMonthly:
		return 2, true
	case PayMonthly:
		return 1, true
	}
	return 2.17, false // treated as bi-weekly by callers
}

// Known reports whether the frequency is one of the supported values.
func (f PayFrequency) Known() bool {
	_, ok := f.monthlyMultiplier()
	return ok
}

type AccountType string

const (
	AccountCreditCard AccountType = "credit_card"
	AccountLoan       AccountType = "loan"
	AccountMortgage   AccountType = "mortgage"
	AccountOther      AccountType = "other"
)

type AccountStatus string

const (
	AccountOpen       AccountStatus = "open"
	AccountClosed     AccountStatus = "closed"
	AccountChargedOff AccountStatus = "charged_off"
)

// CreditAccount is one tradeline on a credit report. Utilization is always
// derived from Balance and CreditLimit, never stored.
type CreditAccount struct {
	Name           string
	Type           AccountType
	Status         AccountStatus
	Balance        float64
	CreditLimit    float64
	MinimumPayment float64
}

type Inquiry struct {
	Date    time.Time
	Company string
	Kind    string // "hard" or "soft"
}

type PublicRecord struct {
	Kind   string // bankruptcy, lien, judgment, other
	Date   time.Time
	Amount float64 `json:",omitempty"`
	Status string  // "active" or "released"
}

// CreditRecord is an already-extracted credit report.
type CreditRecord struct {
	Score         int
	Bureau        string
	ReportDate    time.Time
	Accounts      []CreditAccount
	Inquiries     []Inquiry
	PublicRecords []PublicRecord
}

// TotalBalance sums the balances across all reported accounts.
func (c CreditRecord) TotalBalance() float64 {
	total := 0.0
	for _, a := range c.Accounts {
		total += a.Balance
	}
	return total
}

// TotalLimit sums the credit limits across all reported accounts.
func (c CreditRecord) TotalLimit() float64 {
	total := 0.0
	for _, a := range c.Accounts {
		total += a.CreditLimit
	}
	return total
}

// Utilization returns the overall revolving utilization as a percentage,
// recomputed from account balances and limits on every call.
func (c CreditRecord) Utilization() float64 {
	limit := c.TotalLimit()
	if limit <= 0 {
		return 0
	}
	return c.TotalBalance() / limit * 100
}

// AvailableRevolvingCredit is the unused limit across open credit card
// accounts, the headroom a balance transfer could use.
func (c CreditRecord) AvailableRevolvingCredit() float64 {
	available := 0.0
	for _, a := range c.Accounts {
		if a.Type != AccountCreditCard || a.Status != AccountOpen {
			continue
		}
		if room := a.CreditLimit - a.Balance; room > 0 {
			available += room
		}
	}
	return available
}

type DeductionType string

const (
	DeductionFederalTax      DeductionType = "federal_tax"
	DeductionStateTax        DeductionType = "state_tax"
	DeductionSocialSecurity  DeductionType = "social_security"
	DeductionMedicare        DeductionType = "medicare"
	DeductionHealthInsurance DeductionType = "health_insurance"
	DeductionRetirement      DeductionType = "retirement"
	DeductionOther           DeductionType = "other"
)

type Deduction struct {
	Type   DeductionType
	Amount float64
}

// IncomeRecord is an already-extracted pay stub.
type IncomeRecord struct {
	Employer   string
	PayDate    time.Time
	GrossPay   float64
	NetPay     float64
	Deductions []Deduction
	Frequency  PayFrequency
}

// MonthlyNet is the monthly-equivalent net pay. It is derived on demand so
// that it can never drift from the stated frequency.
func (r IncomeRecord) MonthlyNet() float64 {
	m, _ := r.Frequency.monthlyMultiplier()
	return r.NetPay * m
}

// MonthlyGross is the monthly-equivalent gross pay.
func (r IncomeRecord) MonthlyGross() float64 {
	m, _ := r.Frequency.monthlyMultiplier()
	return r.GrossPay * m
}

type DebtType string

const (
	DebtCreditCard DebtType = "credit_card"
	DebtLoan       DebtType = "loan"
	DebtMortgage   DebtType = "mortgage"
	DebtCollection DebtType = "collection"
)

// DebtObligation is one debt extracted from a statement. AnnualRatePct is a
// percentage (18.99 means 18.99%/year); payoff math converts it to a monthly
// periodic rate explicitly.
type DebtObligation struct {
	Creditor          string
	Type              DebtType
	Balance           float64
	MinimumPayment    float64
	AnnualRatePct     float64
	TermMonths        int `json:",omitempty"`
	RemainingPayments int `json:",omitempty"`
}

// DocumentSet is the engine's input: independently extracted records handed
// over by the document-extraction layer.
type DocumentSet struct {
	Credit []CreditRecord `json:",omitempty"`
	Income []IncomeRecord
	Debt   []DebtObligation
}
