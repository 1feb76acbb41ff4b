package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"strategy-engine/domain"
	"strategy-engine/repository"
)

// AnalysisService runs the full document pipeline: build the profile, run
// both calculators concurrently, then synthesize the plan. Results for an
// identical document set are replayed from cache.
type AnalysisService struct {
	profiles     *ProfileService
	strategies   *StrategyService
	forecasts    *ForecastService
	orchestrator *OrchestratorService
	repo         repository.AnalysisRepository
	cache        repository.CacheRepository
	cacheTTL     time.Duration
}

func NewAnalysisService(
	opts Options,
	repo repository.AnalysisRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
) *AnalysisService {
	return &AnalysisService{
		profiles:     NewProfileService(opts),
		strategies:   NewStrategyService(opts),
		forecasts:    NewForecastService(opts),
		orchestrator: NewOrchestratorService(opts),
		repo:         repo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// Analyze produces a ComprehensiveAnalysis for the supplied documents.
// Validation errors surface as *InputError; everything downstream of a valid
// profile degrades instead of failing.
func (s *AnalysisService) Analyze(
	ctx context.Context,
	docs domain.DocumentSet,
) (domain.ComprehensiveAnalysis, error) {

	key, err := s.cacheKey(docs)
	if err == nil {
		if cached, ok := s.cache.Get(key); ok {
			var analysis domain.ComprehensiveAnalysis
			if err := json.Unmarshal([]byte(cached), &analysis); err == nil {
				return analysis, nil
			}
			log.Printf("Warning: discarding undecodable cache entry %s", key)
		}
	}

	profile, err := s.profiles.Build(docs.Credit, docs.Income, docs.Debt)
	if err != nil {
		return domain.ComprehensiveAnalysis{}, err
	}

	if err := ctx.Err(); err != nil {
		return domain.ComprehensiveAnalysis{}, err
	}

	generatedAt := time.Now().UTC()

	// The profile is immutable from here on, so both calculators can run
	// against it at the same time.
	var (
		wg         sync.WaitGroup
		strategies []domain.Strategy
		scenarios  []domain.Scenario
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		strategies = s.strategies.GenerateStrategies(profile)
	}()
	go func() {
		defer wg.Done()
		scenarios = s.forecasts.GenerateScenarios(profile, generatedAt)
	}()
	wg.Wait()

	plan := s.orchestrator.Synthesize(profile, strategies, scenarios)

	analysis := domain.ComprehensiveAnalysis{
		AnalysisID:  uuid.NewString(),
		GeneratedAt: generatedAt,
		Profile:     profile,
		Strategies:  strategies,
		Scenarios:   scenarios,
		Plan:        plan,
	}

	// Persist and cache are both non-critical.
	if err := s.repo.Save(analysis); err != nil {
		log.Printf("Warning: failed to save analysis %s: %v", analysis.AnalysisID, err)
	}
	if key != "" {
		if encoded, err := json.Marshal(analysis); err == nil {
			if err := s.cache.Set(key, string(encoded), s.cacheTTL); err != nil {
				log.Printf("Warning: failed to cache analysis %s: %v", analysis.AnalysisID, err)
			}
		}
	}

	return analysis, nil
}

// cacheKey hashes the canonical JSON encoding of the document set. Two
// requests with the same documents map to the same key.
func (s *AnalysisService) cacheKey(docs domain.DocumentSet) (string, error) {
	encoded, err := json.Marshal(docs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("analysis:%016x", xxhash.Sum64(encoded)), nil
}
