package usecase

import (
	"github.com/m-mizutani/gollem"

	"github.com/aegis-sec/aegis/pkg/domain/interfaces"
	"github.com/aegis-sec/aegis/pkg/domain/model/catalog"
	"github.com/aegis-sec/aegis/pkg/service/controls"
	"github.com/aegis-sec/aegis/pkg/service/scoring"
)

type UseCases struct {
	repo        interfaces.Repository
	registry    *catalog.Registry
	llmClient   gollem.LLMClient
	maxInFlight int64

	Assessment *AssessmentUseCase
	Scoring    *ScoringUseCase
	Scenario   *ScenarioUseCase
	Controls   *ControlUseCase
}

type Option func(*UseCases)

// WithLLMClient enables the assisted scoring strategy. Without a client,
// every run is algorithmic.
func WithLLMClient(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.llmClient = client
	}
}

// WithCatalogRegistry overrides the built-in template catalogs
func WithCatalogRegistry(registry *catalog.Registry) Option {
	return func(uc *UseCases) {
		uc.registry = registry
	}
}

// WithMaxInFlight caps concurrent completion-service calls per run
func WithMaxInFlight(n int64) Option {
	return func(uc *UseCases) {
		uc.maxInFlight = n
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:        repo,
		registry:    catalog.NewBuiltinRegistry(),
		maxInFlight: defaultMaxInFlight,
	}

	for _, opt := range opts {
		opt(uc)
	}

	library := controls.NewLibrary(repo.Control())

	var assisted scoring.Strategy
	if uc.llmClient != nil {
		assisted = scoring.NewAssisted(uc.llmClient)
	}

	uc.Assessment = NewAssessmentUseCase(repo, uc.registry)
	uc.Scoring = NewScoringUseCase(repo, uc.registry, library, assisted, uc.maxInFlight)
	uc.Scenario = NewScenarioUseCase(repo)
	uc.Controls = NewControlUseCase(repo)

	return uc
}
