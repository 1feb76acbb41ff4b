package service

const (
	MaxCreditScore      = 850
	MaxInterestRate     = 100.0         // annual percent, rates are percentages not fractions
	MaxDebtAmount       = 100_000_000.0 // per obligation
	MaxDebtsPerRequest  = 50
	MaxPayoffMonths     = 600  // 50 years, safety cap for the simulator
	BalanceTolerance    = 0.01 // a balance under this is considered retired
	UtilizationTarget   = 30.0 // percent, the usual reporting threshold
	HighRateThreshold   = 15.0 // percent, triggers rate negotiation advice
	QuickWinBalance     = 1000.0
	TransferFeeRate     = 0.03 // balance transfer fee on the moved amount
	ArbitrageScoreFloor = 700

	// Credit score projection model: utilization recovery contributes up to
	// UtilizationPointCap points scaled by the percent over target, plus a
	// small payment-history increment per on-time month.
	UtilizationPointCap   = 50.0
	UtilizationPointScale = 0.5
	HistoryPointsPerMonth = 2.0
)
