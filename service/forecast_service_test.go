package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strategy-engine/domain"
)

func forecastProfile() domain.FinancialProfile {
	return domain.FinancialProfile{
		Credit: &domain.CreditRecord{
			Score:      720,
			ReportDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			Accounts: []domain.CreditAccount{
				{Name: "Visa", Type: domain.AccountCreditCard, Status: domain.AccountOpen, Balance: 4500, CreditLimit: 10_000},
			},
		},
		Debts: []domain.DebtObligation{
			{Creditor: "Visa", Type: domain.DebtCreditCard, Balance: 9000, MinimumPayment: 270, AnnualRatePct: 21},
			{Creditor: "Lender", Type: domain.DebtLoan, Balance: 3000, MinimumPayment: 90, AnnualRatePct: 9},
		},
		MonthlyIncome:   5000,
		TotalDebt:       12_000,
		PaymentCapacity: 800,
	}
}

func TestGenerateScenariosNamesAndProbabilities(t *testing.T) {
	svc := NewForecastService(Options{})
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	scenarios := svc.GenerateScenarios(forecastProfile(), asOf)
	require.Len(t, scenarios, 3)

	assert.Equal(t, "status-quo", scenarios[0].Name)
	assert.Equal(t, "optimized", scenarios[1].Name)
	assert.Equal(t, "maximum-optimization", scenarios[2].Name)

	assert.InDelta(t, 0.4, scenarios[0].Probability, 1e-9)
	assert.InDelta(t, 0.7, scenarios[1].Probability, 1e-9)
	assert.InDelta(t, 0.5, scenarios[2].Probability, 1e-9)
}

func TestOptimizedScenarioUsesAchievableRate(t *testing.T) {
	svc := NewForecastService(Options{})
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	scenarios := svc.GenerateScenarios(forecastProfile(), asOf)
	require.Len(t, scenarios, 3)

	// A 720 score sits in the 700 bracket at 7.5%.
	optimized := scenarios[1]
	assert.Contains(t, optimized.Assumptions[1], "7.5%")

	statusQuo := scenarios[0]
	assert.Less(t, optimized.Outcomes.PayoffMonths, statusQuo.Outcomes.PayoffMonths)
	assert.Less(t, optimized.Outcomes.TotalInterest, statusQuo.Outcomes.TotalInterest)
}

func TestScenarioProjectsScoreImprovement(t *testing.T) {
	svc := NewForecastService(Options{})
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	scenarios := svc.GenerateScenarios(forecastProfile(), asOf)
	require.Len(t, scenarios, 3)

	for _, sc := range scenarios {
		assert.Greater(t, sc.Outcomes.ProjectedScore, 720, sc.Name)
		assert.LessOrEqual(t, sc.Outcomes.ProjectedScore, MaxCreditScore, sc.Name)
	}
}

func TestScenarioDatesAnchoredToAsOf(t *testing.T) {
	svc := NewForecastService(Options{})
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	scenarios := svc.GenerateScenarios(forecastProfile(), asOf)
	require.Len(t, scenarios, 3)

	for _, sc := range scenarios {
		expected := asOf.AddDate(0, sc.Outcomes.PayoffMonths, 0)
		assert.True(t, sc.Outcomes.PayoffDate.Equal(expected), sc.Name)
	}
}

func TestGenerateScenariosDeterministic(t *testing.T) {
	svc := NewForecastService(Options{})
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	first := svc.GenerateScenarios(forecastProfile(), asOf)
	second := svc.GenerateScenarios(forecastProfile(), asOf)

	assert.Equal(t, first, second)
}

func TestScenarioMilestonesWithinPayoff(t *testing.T) {
	svc := NewForecastService(Options{})
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	scenarios := svc.GenerateScenarios(forecastProfile(), asOf)
	require.Len(t, scenarios, 3)

	for _, sc := range scenarios {
		require.NotEmpty(t, sc.Outcomes.Milestones, sc.Name)
		for i, m := range sc.Outcomes.Milestones {
			assert.Greater(t, m.Month, 0)
			assert.LessOrEqual(t, m.Month, sc.Outcomes.PayoffMonths)
			if i > 0 {
				assert.GreaterOrEqual(t, m.Month, sc.Outcomes.Milestones[i-1].Month)
			}
		}
	}
}

func TestGenerateScenariosDebtFree(t *testing.T) {
	svc := NewForecastService(Options{})
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	profile := domain.FinancialProfile{MonthlyIncome: 5000}

	scenarios := svc.GenerateScenarios(profile, asOf)
	require.Len(t, scenarios, 3)

	for _, sc := range scenarios {
		assert.Zero(t, sc.Outcomes.PayoffMonths, sc.Name)
		assert.Zero(t, sc.Outcomes.TotalInterest, sc.Name)
		assert.True(t, sc.Outcomes.PayoffDate.Equal(asOf), sc.Name)
		assert.Empty(t, sc.Outcomes.Milestones, sc.Name)
	}
}

func TestGenerateScenariosDropsUnpayable(t *testing.T) {
	svc := NewForecastService(Options{})
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	profile := domain.FinancialProfile{
		Debts: []domain.DebtObligation{
			// Minimums cover no principal and there is no capacity, so the
			// status-quo projection cannot complete.
			{Creditor: "Collector", Type: domain.DebtCollection, Balance: 10_000, MinimumPayment: 50, AnnualRatePct: 24},
		},
		MonthlyIncome: 1000,
		TotalDebt:     10_000,
	}

	scenarios := svc.GenerateScenarios(profile, asOf)

	for _, sc := range scenarios {
		assert.NotEqual(t, "status-quo", sc.Name)
	}
}
