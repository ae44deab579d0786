package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/semaphore"

	"github.com/aegis-sec/aegis/pkg/domain/interfaces"
	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/model/catalog"
	"github.com/aegis-sec/aegis/pkg/domain/types"
	"github.com/aegis-sec/aegis/pkg/service/controls"
	"github.com/aegis-sec/aegis/pkg/service/interview"
	"github.com/aegis-sec/aegis/pkg/service/scoring"
	"github.com/aegis-sec/aegis/pkg/utils/errutil"
	"github.com/aegis-sec/aegis/pkg/utils/logging"
)

// defaultMaxInFlight caps concurrent completion-service calls to respect
// upstream rate limits.
const defaultMaxInFlight = 5

// clampDegradeRatio: when more than this share of assisted scores needed
// out-of-range clamping, aggregate confidence drops one step.
const clampDegradeRatio = 0.25

type ScoringUseCase struct {
	repo        interfaces.Repository
	registry    *catalog.Registry
	library     *controls.Library
	assisted    scoring.Strategy
	algorithmic scoring.Strategy
	maxInFlight int64
}

func NewScoringUseCase(repo interfaces.Repository, registry *catalog.Registry, library *controls.Library, assisted scoring.Strategy, maxInFlight int64) *ScoringUseCase {
	if maxInFlight <= 0 {
		maxInFlight = defaultMaxInFlight
	}
	return &ScoringUseCase{
		repo:        repo,
		registry:    registry,
		library:     library,
		assisted:    assisted,
		algorithmic: scoring.NewAlgorithmic(),
		maxInFlight: maxInFlight,
	}
}

// RunOptions control one scoring run
type RunOptions struct {
	// UseAssisted requests the completion-service strategy. Ignored when
	// no client is configured.
	UseAssisted bool
}

// Score loads an assessment, runs the orchestrator over its catalog, and
// persists the resulting run as one batch.
func (uc *ScoringUseCase) Score(ctx context.Context, assessmentID int64, opts RunOptions) (*model.AssessmentRun, error) {
	assessment, err := uc.repo.Assessment().Get(ctx, assessmentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load assessment",
			goerr.V("assessment_id", assessmentID),
		)
	}

	run, err := uc.RunAssessment(ctx, assessment, opts)
	if err != nil {
		return nil, err
	}

	// The run is still usable even when persisting it fails; the caller
	// decides whether that is fatal.
	if err := uc.repo.Run().Put(context.WithoutCancel(ctx), run); err != nil {
		wrapped := goerr.Wrap(err, "failed to store assessment run",
			goerr.V("assessment_id", assessmentID),
			goerr.V("run_id", run.RunID),
		)
		return run, errutil.Handle(ctx, wrapped, "failed to store assessment run")
	}

	return run, nil
}

// GetRun fetches one stored run
func (uc *ScoringUseCase) GetRun(ctx context.Context, assessmentID int64, runID string) (*model.AssessmentRun, error) {
	run, err := uc.repo.Run().Get(ctx, assessmentID, runID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get run",
			goerr.V("assessment_id", assessmentID),
			goerr.V("run_id", runID),
		)
	}
	return run, nil
}

// ListRuns lists stored runs for an assessment, newest first
func (uc *ScoringUseCase) ListRuns(ctx context.Context, assessmentID int64) ([]*model.AssessmentRun, error) {
	runs, err := uc.repo.Run().List(ctx, assessmentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list runs",
			goerr.V("assessment_id", assessmentID),
		)
	}
	return runs, nil
}

// RunAssessment scores every catalog threat for the given assessment.
// Threats are scored concurrently with bounded in-flight calls, results are
// written into catalog-indexed slots so the output order always matches
// catalog order. A failed assisted call falls back to the algorithmic
// strategy for that threat only; the run never aborts because one threat
// failed. On cancellation, abandoned threats are scored algorithmically
// before returning so the run is always complete.
func (uc *ScoringUseCase) RunAssessment(ctx context.Context, assessment *model.Assessment, opts RunOptions) (*model.AssessmentRun, error) {
	logger := logging.From(ctx)
	startedAt := time.Now()

	cat, err := uc.registry.Get(assessment.TemplateID)
	if err != nil {
		return nil, goerr.Wrap(err, "unknown assessment template",
			goerr.V("template_id", assessment.TemplateID),
		)
	}

	// The control library may change between runs; reload per run and
	// share the loaded snapshot across all threat scorings.
	uc.library.Invalidate()
	allowed, err := uc.library.List(ctx)
	if err != nil {
		return nil, err
	}

	profile := interview.ExtractProfile(assessment.Answers)
	signals := interview.ExtractSignals(assessment.Answers, cat.Rules)
	completion := interview.ValidateCompletion(assessment.Answers, cat)

	useAssisted := opts.UseAssisted && uc.assisted != nil

	results := make([]*model.ThreatScore, len(cat.Threats))
	assistedUsed := make([]bool, len(cat.Threats))

	sem := semaphore.NewWeighted(uc.maxInFlight)
	var wg sync.WaitGroup

	for i := range cat.Threats {
		in := &scoring.Input{
			Threat:          &cat.Threats[i],
			Catalog:         cat,
			Profile:         profile,
			Signals:         signals,
			Completion:      completion,
			AllowedControls: allowed,
		}

		if !useAssisted {
			// Deterministic path needs no fan-out.
			score, err := uc.algorithmic.ScoreThreat(ctx, in)
			if err != nil {
				return nil, goerr.Wrap(err, "algorithmic scoring failed",
					goerr.V("threat_id", in.Threat.ID),
				)
			}
			results[i] = score
			continue
		}

		wg.Add(1)
		go func(i int, in *scoring.Input) {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				// Run cancelled; leave the slot for the synchronous
				// fallback sweep below.
				return
			}
			defer sem.Release(1)

			score, err := uc.assisted.ScoreThreat(ctx, in)
			if err != nil {
				logger.Warn("assisted scoring failed, falling back",
					"threat_id", in.Threat.ID,
					"error", err,
				)
				return
			}

			results[i] = score
			assistedUsed[i] = true
		}(i, in)
	}
	wg.Wait()

	// Fill every remaining slot algorithmically. This covers both assisted
	// failures and threats abandoned by cancellation; the caller always
	// receives a score per catalog threat.
	var gaps []string
	fallbackCtx := context.WithoutCancel(ctx)
	for i := range cat.Threats {
		if results[i] != nil {
			continue
		}
		in := &scoring.Input{
			Threat:          &cat.Threats[i],
			Catalog:         cat,
			Profile:         profile,
			Signals:         signals,
			Completion:      completion,
			AllowedControls: allowed,
		}
		score, err := uc.algorithmic.ScoreThreat(fallbackCtx, in)
		if err != nil {
			gaps = append(gaps, fmt.Sprintf("threat %s could not be scored: %v", in.Threat.ID, err))
			continue
		}
		score.Confidence = types.ConfidenceFallback
		results[i] = score
	}

	// Compact out gap slots while preserving catalog order.
	scores := make([]*model.ThreatScore, 0, len(results))
	assistedCount := 0
	clampedCount := 0
	for i, score := range results {
		if score == nil {
			continue
		}
		scores = append(scores, score)
		if assistedUsed[i] {
			assistedCount++
			if score.Adjustments > 0 {
				clampedCount++
			}
		}
	}

	mode, confidence := runModeAndConfidence(len(scores), assistedCount, clampedCount)

	runID, err := uuid.NewV7()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate run ID")
	}

	run := &model.AssessmentRun{
		RunID:        runID.String(),
		AssessmentID: assessment.ID,
		ThreatScores: scores,
		Mode:         mode,
		Confidence:   confidence,
		ElapsedMs:    time.Since(startedAt).Milliseconds(),
		Gaps:         gaps,
		CreatedAt:    time.Now(),
	}

	logger.Info("assessment run completed",
		"assessment_id", assessment.ID,
		"run_id", run.RunID,
		"mode", run.Mode,
		"confidence", run.Confidence,
		"threats", len(scores),
		"assisted", assistedCount,
		"elapsed_ms", run.ElapsedMs,
	)

	return run, nil
}

// runModeAndConfidence derives the run mode from how many threats the
// assisted strategy actually scored, then degrades confidence one step if
// too many assisted scores needed out-of-range clamping.
func runModeAndConfidence(total, assistedCount, clampedCount int) (types.ScoringMode, types.Confidence) {
	if total == 0 || assistedCount == 0 {
		return types.ModeAlgorithmic, types.ConfidenceFallback
	}

	mode := types.ModeHybrid
	if assistedCount == total {
		mode = types.ModeAssisted
	}

	ratio := float64(assistedCount) / float64(total)
	var confidence types.Confidence
	switch {
	case ratio >= 0.8:
		confidence = types.ConfidenceHigh
	case ratio >= 0.5:
		confidence = types.ConfidenceMedium
	default:
		confidence = types.ConfidenceLow
	}

	if float64(clampedCount) > float64(assistedCount)*clampDegradeRatio {
		confidence = confidence.Degrade()
	}

	return mode, confidence
}
