package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/aegis-sec/aegis/pkg/domain/interfaces"
	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/model/catalog"
	"github.com/aegis-sec/aegis/pkg/service/interview"
)

type AssessmentUseCase struct {
	repo     interfaces.Repository
	registry *catalog.Registry
}

func NewAssessmentUseCase(repo interfaces.Repository, registry *catalog.Registry) *AssessmentUseCase {
	return &AssessmentUseCase{
		repo:     repo,
		registry: registry,
	}
}

func (uc *AssessmentUseCase) Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	if assessment.Title == "" {
		return nil, goerr.New("assessment title is required")
	}
	if _, err := uc.registry.Get(assessment.TemplateID); err != nil {
		return nil, goerr.Wrap(err, "invalid assessment template",
			goerr.V("template_id", assessment.TemplateID),
		)
	}

	created, err := uc.repo.Assessment().Create(ctx, assessment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create assessment")
	}
	return created, nil
}

func (uc *AssessmentUseCase) Get(ctx context.Context, id int64) (*model.Assessment, error) {
	assessment, err := uc.repo.Assessment().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("assessment_id", id))
	}
	return assessment, nil
}

func (uc *AssessmentUseCase) List(ctx context.Context) ([]*model.Assessment, error) {
	assessments, err := uc.repo.Assessment().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments")
	}
	return assessments, nil
}

func (uc *AssessmentUseCase) Update(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	if assessment.Title == "" {
		return nil, goerr.New("assessment title is required")
	}

	updated, err := uc.repo.Assessment().Update(ctx, assessment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update assessment",
			goerr.V("assessment_id", assessment.ID),
		)
	}
	return updated, nil
}

func (uc *AssessmentUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Assessment().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V("assessment_id", id))
	}
	return nil
}

// RecordAnswers merges a batch of interview answers into the assessment and
// returns the refreshed completion status. Responses that carry nothing at
// all are dropped rather than stored as blank entries.
func (uc *AssessmentUseCase) RecordAnswers(ctx context.Context, id int64, answers model.AnswerSet) (*model.Assessment, *model.CompletionStatus, error) {
	for q, r := range answers {
		if r.IsEmpty() {
			delete(answers, q)
		}
	}

	updated, err := uc.repo.Assessment().PutAnswers(ctx, id, answers)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to record answers",
			goerr.V("assessment_id", id),
		)
	}

	status, err := uc.Completion(ctx, updated)
	if err != nil {
		return nil, nil, err
	}
	return updated, status, nil
}

// Completion validates interview completeness against the assessment's
// catalog
func (uc *AssessmentUseCase) Completion(ctx context.Context, assessment *model.Assessment) (*model.CompletionStatus, error) {
	cat, err := uc.registry.Get(assessment.TemplateID)
	if err != nil {
		return nil, goerr.Wrap(err, "unknown assessment template",
			goerr.V("template_id", assessment.TemplateID),
		)
	}
	return interview.ValidateCompletion(assessment.Answers, cat), nil
}
