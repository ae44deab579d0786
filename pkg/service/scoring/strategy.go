package scoring

import (
	"context"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/model/catalog"
)

// Input carries everything a strategy needs to score one catalog threat
type Input struct {
	Threat     *catalog.ThreatDefinition
	Catalog    *catalog.Catalog
	Profile    *model.SubjectProfile
	Signals    []*model.RiskSignal
	Completion *model.CompletionStatus

	// AllowedControls is the control library; strategies may only
	// recommend controls by these exact names, never invented ones.
	AllowedControls []*model.Control
}

// Strategy scores one threat. The algorithmic strategy always succeeds;
// the assisted strategy returns an error on service failure or malformed
// output so the caller can fall back.
type Strategy interface {
	ScoreThreat(ctx context.Context, in *Input) (*model.ThreatScore, error)
	Name() string
}
