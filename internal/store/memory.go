package store

import (
	"context"

	"railtracker/internal/model"
)

// MemoryLoader serves a fixed set of observations, or a fixed error.
type MemoryLoader struct {
	Observations []model.Observation
	Err          error
}

func NewMemoryLoader(obs ...model.Observation) *MemoryLoader {
	return &MemoryLoader{Observations: obs}
}

func (m *MemoryLoader) LoadObservations(_ context.Context) ([]model.Observation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]model.Observation, len(m.Observations))
	copy(out, m.Observations)
	return out, nil
}
