package interfaces

import (
	"context"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	Assessment() AssessmentRepository
	Run() RunRepository
	Scenario() ScenarioRepository
	Control() ControlRepository
	Close() error
}

// AssessmentRepository persists assessments and their recorded answers
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error)
	Get(ctx context.Context, id int64) (*model.Assessment, error)
	List(ctx context.Context) ([]*model.Assessment, error)
	Update(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error)
	Delete(ctx context.Context, id int64) error

	// PutAnswers merges the given answers into the assessment's answer set.
	// Recorded answers are immutable: an existing answer for a question is
	// only replaced, never partially edited.
	PutAnswers(ctx context.Context, id int64, answers model.AnswerSet) (*model.Assessment, error)
}

// RunRepository persists completed scoring runs. Threat scores are written
// as a whole run batch, never one by one.
type RunRepository interface {
	Put(ctx context.Context, run *model.AssessmentRun) error
	Get(ctx context.Context, assessmentID int64, runID string) (*model.AssessmentRun, error)
	Latest(ctx context.Context, assessmentID int64) (*model.AssessmentRun, error)
	List(ctx context.Context, assessmentID int64) ([]*model.AssessmentRun, error)
}

// ScenarioRepository persists facility risk scenarios and their linked
// treatment plans
type ScenarioRepository interface {
	Create(ctx context.Context, scenario *model.Scenario) (*model.Scenario, error)
	Get(ctx context.Context, id int64) (*model.Scenario, error)
	ListByAssessment(ctx context.Context, assessmentID int64) ([]*model.Scenario, error)
	Update(ctx context.Context, scenario *model.Scenario) (*model.Scenario, error)
	Delete(ctx context.Context, id int64) error
}

// ControlRepository reads the control library
type ControlRepository interface {
	List(ctx context.Context) ([]*model.Control, error)
	Get(ctx context.Context, id types.ControlID) (*model.Control, error)
	Put(ctx context.Context, control *model.Control) error
}
