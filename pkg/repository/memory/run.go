package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
)

type runRepository struct {
	mu   sync.RWMutex
	runs map[int64]map[string]*model.AssessmentRun
}

func newRunRepository() *runRepository {
	return &runRepository{
		runs: make(map[int64]map[string]*model.AssessmentRun),
	}
}

func copyScore(s *model.ThreatScore) *model.ThreatScore {
	copied := &model.ThreatScore{
		ThreatID:         s.ThreatID,
		ThreatName:       s.ThreatName,
		ThreatLikelihood: s.ThreatLikelihood,
		Vulnerability:    s.Vulnerability,
		Impact:           s.Impact,
		Exposure:         s.Exposure,
		RawScore:         s.RawScore,
		NormalizedScore:  s.NormalizedScore,
		Classification:   s.Classification,
		Confidence:       s.Confidence,
		Adjustments:      s.Adjustments,
	}
	copied.Evidence = append([]string{}, s.Evidence...)
	copied.ControlGaps = append([]string{}, s.ControlGaps...)
	for _, rec := range s.PriorityControls {
		c := &model.ControlRecommendation{
			Name:            rec.Name,
			Category:        rec.Category,
			Urgency:         rec.Urgency,
			AddressesThreat: append([]types.ThreatID{}, rec.AddressesThreat...),
			EstimatedCost:   rec.EstimatedCost,
		}
		copied.PriorityControls = append(copied.PriorityControls, c)
	}
	return copied
}

func copyRun(run *model.AssessmentRun) *model.AssessmentRun {
	copied := &model.AssessmentRun{
		RunID:        run.RunID,
		AssessmentID: run.AssessmentID,
		Mode:         run.Mode,
		Confidence:   run.Confidence,
		ElapsedMs:    run.ElapsedMs,
		Gaps:         append([]string{}, run.Gaps...),
		CreatedAt:    run.CreatedAt,
	}
	for _, s := range run.ThreatScores {
		copied.ThreatScores = append(copied.ThreatScores, copyScore(s))
	}
	return copied
}

func (r *runRepository) Put(ctx context.Context, run *model.AssessmentRun) error {
	if run.RunID == "" {
		return goerr.New("run ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.runs[run.AssessmentID]
	if !exists {
		bucket = make(map[string]*model.AssessmentRun)
		r.runs[run.AssessmentID] = bucket
	}

	stored := copyRun(run)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	bucket[run.RunID] = stored
	return nil
}

func (r *runRepository) Get(ctx context.Context, assessmentID int64, runID string) (*model.AssessmentRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, exists := r.runs[assessmentID][runID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "run not found",
			goerr.V("assessment_id", assessmentID),
			goerr.V("run_id", runID),
		)
	}
	return copyRun(run), nil
}

func (r *runRepository) Latest(ctx context.Context, assessmentID int64) (*model.AssessmentRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.AssessmentRun
	for _, run := range r.runs[assessmentID] {
		if latest == nil || run.CreatedAt.After(latest.CreatedAt) {
			latest = run
		}
	}
	if latest == nil {
		return nil, goerr.Wrap(ErrNotFound, "no runs recorded",
			goerr.V("assessment_id", assessmentID),
		)
	}
	return copyRun(latest), nil
}

func (r *runRepository) List(ctx context.Context, assessmentID int64) ([]*model.AssessmentRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]*model.AssessmentRun, 0, len(r.runs[assessmentID]))
	for _, run := range r.runs[assessmentID] {
		runs = append(runs, copyRun(run))
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}
