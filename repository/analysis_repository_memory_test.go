package repository

import (
	"testing"
	"time"

	"strategy-engine/domain"
)

func TestAnalysisRepositoryMemory(t *testing.T) {

	repo := NewAnalysisRepositoryMemory()

	analysis := domain.ComprehensiveAnalysis{
		AnalysisID:  "a-1",
		GeneratedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.Save(analysis); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, ok := repo.FindByID("a-1")
	if !ok {
		t.Fatal("expected to find saved analysis")
	}
	if got.AnalysisID != "a-1" {
		t.Errorf("expected a-1, got %q", got.AnalysisID)
	}

	if _, ok := repo.FindByID("missing"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestMockCacheRoundTrip(t *testing.T) {

	cache := NewMockCache()

	if _, ok := cache.Get("k"); ok {
		t.Fatal("expected miss on empty cache")
	}

	if err := cache.Set("k", "v", time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, ok := cache.Get("k")
	if !ok || val != "v" {
		t.Errorf("expected v, got %q (hit=%v)", val, ok)
	}
}
