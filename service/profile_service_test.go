package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strategy-engine/domain"
)

func payStub(payDate time.Time, net float64, freq domain.PayFrequency) domain.IncomeRecord {
	return domain.IncomeRecord{
		Employer:  "Acme Corp",
		PayDate:   payDate,
		GrossPay:  net * 1.35,
		NetPay:    net,
		Frequency: freq,
	}
}

func TestBuildMonthlyIncomeByFrequency(t *testing.T) {
	cases := []struct {
		freq    domain.PayFrequency
		net     float64
		monthly float64
	}{
		{domain.PayWeekly, 1000, 4330},
		{domain.PayBiWeekly, 1000, 2170},
		{domain.PaySemiMonthly, 1000, 2000},
		{domain.PayMonthly, 1000, 1000},
	}

	svc := NewProfileService(Options{})
	payDate := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)

	for _, tc := range cases {
		t.Run(string(tc.freq), func(t *testing.T) {
			profile, err := svc.Build(nil, []domain.IncomeRecord{payStub(payDate, tc.net, tc.freq)}, nil)
			require.NoError(t, err)
			assert.InDelta(t, tc.monthly, profile.MonthlyIncome, 0.01)
		})
	}
}

func TestBuildUnknownFrequencyAssumesBiWeekly(t *testing.T) {
	svc := NewProfileService(Options{})
	payDate := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)

	profile, err := svc.Build(nil, []domain.IncomeRecord{payStub(payDate, 1000, "fortnightly")}, nil)
	require.NoError(t, err)

	assert.InDelta(t, 2170.0, profile.MonthlyIncome, 0.01)
	assert.True(t, hasDiscrepancy(profile, domain.DiscrepancyUnknownFrequency))
}

func TestBuildPaymentCapacity(t *testing.T) {
	svc := NewProfileService(Options{})
	payDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	debts := []domain.DebtObligation{
		{Creditor: "Visa", Type: domain.DebtCreditCard, Balance: 4000, MinimumPayment: 500, AnnualRatePct: 20},
	}

	profile, err := svc.Build(nil, []domain.IncomeRecord{payStub(payDate, 5000, domain.PayMonthly)}, debts)
	require.NoError(t, err)

	// 5000 - 500 minimums - 3000 living expenses.
	assert.InDelta(t, 1500.0, profile.PaymentCapacity, 0.01)
}

func TestBuildPaymentCapacityFlooredAtZero(t *testing.T) {
	svc := NewProfileService(Options{})
	payDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	debts := []domain.DebtObligation{
		{Creditor: "Visa", Type: domain.DebtCreditCard, Balance: 9000, MinimumPayment: 600, AnnualRatePct: 20},
	}

	profile, err := svc.Build(nil, []domain.IncomeRecord{payStub(payDate, 1000, domain.PayMonthly)}, debts)
	require.NoError(t, err)

	assert.Zero(t, profile.PaymentCapacity)
}

func TestBuildPicksMostRecentCreditReport(t *testing.T) {
	svc := NewProfileService(Options{})
	older := domain.CreditRecord{Score: 650, Bureau: "equifax", ReportDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	newer := domain.CreditRecord{Score: 700, Bureau: "experian", ReportDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)}

	profile, err := svc.Build([]domain.CreditRecord{older, newer}, nil, nil)
	require.NoError(t, err)

	require.NotNil(t, profile.Credit)
	assert.Equal(t, 700, profile.Credit.Score)
	assert.Equal(t, "experian", profile.Credit.Bureau)
}

func TestBuildWithoutCreditReportStillSucceeds(t *testing.T) {
	svc := NewProfileService(Options{})
	payDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	debts := []domain.DebtObligation{
		{Creditor: "Visa", Type: domain.DebtCreditCard, Balance: 4000, MinimumPayment: 120, AnnualRatePct: 20},
	}

	profile, err := svc.Build(nil, []domain.IncomeRecord{payStub(payDate, 4000, domain.PayMonthly)}, debts)
	require.NoError(t, err)

	assert.Nil(t, profile.Credit)
	assert.Zero(t, profile.CreditScore())
	assert.True(t, hasDiscrepancy(profile, domain.DiscrepancyInsufficientData))
}

func TestBuildFlagsDebtMismatch(t *testing.T) {
	svc := NewProfileService(Options{})
	credit := domain.CreditRecord{
		Score:      700,
		ReportDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		Accounts: []domain.CreditAccount{
			{Name: "Visa", Type: domain.AccountCreditCard, Status: domain.AccountOpen, Balance: 10_000, CreditLimit: 20_000},
		},
	}
	debts := []domain.DebtObligation{
		{Creditor: "Visa", Type: domain.DebtCreditCard, Balance: 5000, MinimumPayment: 150, AnnualRatePct: 20},
	}

	profile, err := svc.Build([]domain.CreditRecord{credit}, nil, debts)
	require.NoError(t, err)

	var mismatch *domain.Discrepancy
	for i := range profile.Discrepancies {
		if profile.Discrepancies[i].Type == domain.DiscrepancyDebtMismatch {
			mismatch = &profile.Discrepancies[i]
		}
	}
	require.NotNil(t, mismatch)
	// 50% disagreement is well past double the tolerance.
	assert.Equal(t, "high", mismatch.Severity)
}

func TestBuildFlagsIncomeVariance(t *testing.T) {
	svc := NewProfileService(Options{})
	stubs := []domain.IncomeRecord{
		payStub(time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC), 2000, domain.PayMonthly),
		payStub(time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC), 1500, domain.PayMonthly),
	}

	profile, err := svc.Build(nil, stubs, nil)
	require.NoError(t, err)

	assert.True(t, hasDiscrepancy(profile, domain.DiscrepancyIncomeMismatch))
}

func TestBuildFlagsActivePublicRecord(t *testing.T) {
	svc := NewProfileService(Options{})
	credit := domain.CreditRecord{
		Score:      640,
		ReportDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PublicRecords: []domain.PublicRecord{
			{Kind: "lien", Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Status: "active"},
		},
	}

	profile, err := svc.Build([]domain.CreditRecord{credit}, nil, nil)
	require.NoError(t, err)

	assert.True(t, hasDiscrepancy(profile, domain.DiscrepancyPublicRecord))
}

func TestBuildUtilizationDerivedFromAccounts(t *testing.T) {
	svc := NewProfileService(Options{})
	credit := domain.CreditRecord{
		Score:      720,
		ReportDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		Accounts: []domain.CreditAccount{
			{Name: "Visa", Type: domain.AccountCreditCard, Status: domain.AccountOpen, Balance: 3000, CreditLimit: 10_000},
			{Name: "MC", Type: domain.AccountCreditCard, Status: domain.AccountOpen, Balance: 1500, CreditLimit: 5000},
		},
	}

	profile, err := svc.Build([]domain.CreditRecord{credit}, nil, nil)
	require.NoError(t, err)

	assert.InDelta(t, 4500.0/15_000.0*100, profile.Utilization(), 1e-9)
}

func TestBuildRejectsNegativeBalance(t *testing.T) {
	svc := NewProfileService(Options{})
	debts := []domain.DebtObligation{
		{Creditor: "Visa", Type: domain.DebtCreditCard, Balance: -100, MinimumPayment: 25, AnnualRatePct: 20},
	}

	_, err := svc.Build(nil, nil, debts)

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "debt[0].balance", inputErr.Field)
}

func TestBuildRejectsNetOverGross(t *testing.T) {
	svc := NewProfileService(Options{})
	stub := domain.IncomeRecord{
		PayDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		GrossPay:  1000,
		NetPay:    1200,
		Frequency: domain.PayMonthly,
	}

	_, err := svc.Build(nil, []domain.IncomeRecord{stub}, nil)

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "income[0].netPay", inputErr.Field)
}

func TestBuildSortsIncomesMostRecentFirst(t *testing.T) {
	svc := NewProfileService(Options{})
	stubs := []domain.IncomeRecord{
		payStub(time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC), 2000, domain.PayMonthly),
		payStub(time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC), 2000, domain.PayMonthly),
		payStub(time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC), 2000, domain.PayMonthly),
	}

	profile, err := svc.Build(nil, stubs, nil)
	require.NoError(t, err)

	require.Len(t, profile.Incomes, 3)
	assert.True(t, profile.Incomes[0].PayDate.After(profile.Incomes[1].PayDate))
	assert.True(t, profile.Incomes[1].PayDate.After(profile.Incomes[2].PayDate))
}

func hasDiscrepancy(profile domain.FinancialProfile, kind domain.DiscrepancyType) bool {
	for _, d := range profile.Discrepancies {
		if d.Type == kind {
			return true
		}
	}
	return false
}
