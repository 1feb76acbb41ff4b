package domain

// Strategy is one named debt-elimination plan. Strategies are value objects;
// the calculator returns a fresh ranked set per run.
type Strategy struct {
	Name           string
	Description    string
	MonthlyPayment float64
	PayoffMonths   int
	InterestSaved  float64
	Priority       string // high, medium, low
	Requirements   []string
	Risks          []string
}
