package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/aegis-sec/aegis/pkg/domain/model"
)

type assessmentRepository struct {
	mu          sync.RWMutex
	assessments map[int64]*model.Assessment
	nextID      int64
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		assessments: make(map[int64]*model.Assessment),
		nextID:      1,
	}
}

// copyAssessment creates a deep copy so callers never share map state
func copyAssessment(a *model.Assessment) *model.Assessment {
	copied := &model.Assessment{
		ID:          a.ID,
		Title:       a.Title,
		SubjectName: a.SubjectName,
		TemplateID:  a.TemplateID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Answers != nil {
		copied.Answers = make(model.AnswerSet, len(a.Answers))
		for id, resp := range a.Answers {
			r := *resp
			copied.Answers[id] = &r
		}
	}
	return copied
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyAssessment(assessment)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.assessments[created.ID] = created
	return copyAssessment(created), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id int64) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessment, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}
	return copyAssessment(assessment), nil
}

func (r *assessmentRepository) List(ctx context.Context) ([]*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessments := make([]*model.Assessment, 0, len(r.assessments))
	for _, a := range r.assessments {
		assessments = append(assessments, copyAssessment(a))
	}
	return assessments, nil
}

func (r *assessmentRepository) Update(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.assessments[assessment.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", assessment.ID))
	}

	updated := copyAssessment(assessment)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.assessments[updated.ID] = updated
	return copyAssessment(updated), nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assessments[id]; !exists {
		return goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}
	delete(r.assessments, id)
	return nil
}

func (r *assessmentRepository) PutAnswers(ctx context.Context, id int64, answers model.AnswerSet) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	if existing.Answers == nil {
		existing.Answers = make(model.AnswerSet, len(answers))
	}
	for qid, resp := range answers {
		// Recorded answers are replaced whole, never merged field-wise.
		copied := *resp
		existing.Answers[qid] = &copied
	}
	existing.UpdatedAt = time.Now().UTC()

	return copyAssessment(existing), nil
}
