package service

// RateBracket maps a minimum credit score to the annual rate that score can
// realistically obtain through consolidation or refinancing.
type RateBracket struct {
	MinScore int
	RatePct  float64
}

// Options are the engine's tuning knobs. Zero values are replaced by the
// defaults from DefaultOptions, so a partially filled Options is safe.
type Options struct {
	LivingExpenseRatio   float64       // fraction of income assumed spent on living
	DiscrepancyTolerance float64       // relative disagreement before flagging
	ForecastHorizon      int           // months
	RateTable            []RateBracket // sorted descending by MinScore
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		LivingExpenseRatio:   0.6,
		DiscrepancyTolerance: 0.10,
		ForecastHorizon:      36,
		RateTable: []RateBracket{
			{MinScore: 750, RatePct: 6.5},
			{MinScore: 700, RatePct: 7.5},
			{MinScore: 650, RatePct: 9.5},
			{MinScore: 0, RatePct: 12.0},
		},
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.LivingExpenseRatio <= 0 {
		o.LivingExpenseRatio = def.LivingExpenseRatio
	}
	if o.DiscrepancyTolerance <= 0 {
		o.DiscrepancyTolerance = def.DiscrepancyTolerance
	}
	if o.ForecastHorizon <= 0 {
		o.ForecastHorizon = def.ForecastHorizon
	}
	if len(o.RateTable) == 0 {
		o.RateTable = def.RateTable
	}
	return o
}

// AchievableRate looks up the rate bracket for a credit score. With no
// matching bracket the worst bracket applies.
func (o Options) AchievableRate(score int) float64 {
	worst := 0.0
	for _, b := range o.RateTable {
		if score >= b.MinScore {
			return b.RatePct
		}
		worst = b.RatePct
	}
	return worst
}
