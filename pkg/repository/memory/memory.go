package memory

import (
	"github.com/aegis-sec/aegis/pkg/domain/interfaces"
)

type Memory struct {
	assessment *assessmentRepository
	run        *runRepository
	scenario   *scenarioRepository
	control    *controlRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		assessment: newAssessmentRepository(),
		run:        newRunRepository(),
		scenario:   newScenarioRepository(),
		control:    newControlRepository(),
	}
}

func (m *Memory) Assessment() interfaces.AssessmentRepository {
	return m.assessment
}

func (m *Memory) Run() interfaces.RunRepository {
	return m.run
}

func (m *Memory) Scenario() interfaces.ScenarioRepository {
	return m.scenario
}

func (m *Memory) Control() interfaces.ControlRepository {
	return m.control
}

func (m *Memory) Close() error {
	return nil
}
