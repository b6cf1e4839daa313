package store

import (
	"context"
	"fmt"

	"railtracker/internal/model"
)

// Loader reads every stored observation, oldest fetch first.
type Loader interface {
	LoadObservations(ctx context.Context) ([]model.Observation, error)
}

// DataAccessError reports that the store could not be opened or queried.
type DataAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("store %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }
