// Package pipeline runs load, shape and render once and maps every failure to
// a single message for the user.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"railtracker/internal/chart"
	"railtracker/internal/shaper"
	"railtracker/internal/store"
)

// Outcome is how a run ended.
type Outcome int

const (
	Shown Outcome = iota
	Empty
	DataAccessFailed
	MalformedData
	RenderFailed
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Shown:
		return "shown"
	case Empty:
		return "empty"
	case DataAccessFailed:
		return "data_access_failed"
	case MalformedData:
		return "malformed_data"
	case RenderFailed:
		return "render_failed"
	default:
		return "failed"
	}
}

// ExitCode is the process status for the outcome. An empty store is not a failure.
func (o Outcome) ExitCode() int {
	switch o {
	case Shown, Empty:
		return 0
	case MalformedData:
		return 2
	case RenderFailed:
		return 3
	default:
		return 1
	}
}

const (
	MsgEmpty      = "Database is empty. Run the collector first!"
	MsgDataAccess = "Error reading database. Make sure the collector has run at least once."
	MsgOpening    = "Opening plot window..."
)

// Runner wires the three stages together.
type Runner struct {
	Loader    store.Loader
	Presenter chart.Presenter
	Options   chart.Options
	Out       io.Writer
}

// Run executes the pipeline once. The returned error is the underlying cause
// for logging; the user has already been told what happened via Out.
func (r *Runner) Run(ctx context.Context) (Outcome, error) {
	obs, err := r.Loader.LoadObservations(ctx)
	if err != nil {
		return r.fail(err)
	}
	if len(obs) == 0 {
		r.say(MsgEmpty)
		return Empty, nil
	}

	ds, err := shaper.Shape(obs)
	if err != nil {
		return r.fail(err)
	}
	log.Info().Int("observations", len(obs)).Int("connections", len(ds.Series)).Str("journey_date", ds.JourneyDate).Msg("price history prepared")

	ch := chart.Build(ds, r.Options)
	img, err := chart.RenderPNG(ch)
	if err != nil {
		return r.fail(err)
	}

	r.say(MsgOpening)
	if err := r.Presenter.Present(ch.Title, img); err != nil {
		return r.fail(err)
	}
	return Shown, nil
}

func (r *Runner) fail(err error) (Outcome, error) {
	var dae *store.DataAccessError
	var mde *shaper.MalformedDataError
	var ree *chart.RenderEnvironmentError

	switch {
	case errors.As(err, &dae):
		r.say(MsgDataAccess)
		return DataAccessFailed, err
	case errors.As(err, &mde):
		r.say(fmt.Sprintf("Malformed data in store: %s of row %d is %q. The database may be corrupt.", mde.Field, mde.Row+1, mde.Value))
		return MalformedData, err
	case errors.As(err, &ree):
		r.say(fmt.Sprintf("Cannot display chart: %v", ree.Err))
		return RenderFailed, err
	default:
		r.say(fmt.Sprintf("Unexpected error: %v", err))
		return Failed, err
	}
}

func (r *Runner) say(msg string) {
	if r.Out == nil {
		return
	}
	fmt.Fprintln(r.Out, msg)
}
