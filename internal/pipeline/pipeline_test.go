package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"

	"railtracker/internal/chart"
	"railtracker/internal/model"
	"railtracker/internal/store"
)

type fakePresenter struct {
	calls int
	title string
	img   image.Image
	err   error
}

func (f *fakePresenter) Present(title string, img image.Image) error {
	f.calls++
	f.title = title
	f.img = img
	return f.err
}

func row(fetched, train, departure string, price float64) model.Observation {
	return model.Observation{
		FetchTimestamp: fetched,
		TrainName:      train,
		PriceAmount:    decimal.NewNullDecimal(decimal.NewFromFloat(price)),
		JourneyDate:    "2025-12-19T07:00:00.000Z",
		DepartureTime:  null.StringFrom(departure),
	}
}

func newRunner(l store.Loader, p chart.Presenter) (*Runner, *bytes.Buffer) {
	var out bytes.Buffer
	opts := chart.DefaultOptions()
	opts.Width, opts.Height = 640, 320
	return &Runner{Loader: l, Presenter: p, Options: opts, Out: &out}, &out
}

func TestRun_ShowsChart(t *testing.T) {
	p := &fakePresenter{}
	r, out := newRunner(store.NewMemoryLoader(
		row("2025-12-01T10:00:00.000Z", "ICE 567", "08:10", 49.99),
		row("2025-12-01T10:00:01.000Z", "RE 1", "09:00", 19.90),
		row("2025-12-02T10:00:00.000Z", "ICE 567", "08:10", 55.99),
	), p)

	outcome, err := r.Run(context.Background())
	if err != nil || outcome != Shown {
		t.Fatalf("expected shown, got %s (%v)", outcome, err)
	}
	if p.calls != 1 {
		t.Fatalf("expected one presentation, got %d", p.calls)
	}
	if p.title != "Price Trend: Karlsruhe -> Munich (2025-12-19)" {
		t.Errorf("unexpected title %q", p.title)
	}
	if p.img == nil || p.img.Bounds().Dx() != 640 {
		t.Errorf("expected a 640px wide chart image")
	}
	if !strings.Contains(out.String(), MsgOpening) {
		t.Errorf("expected opening message, got %q", out.String())
	}
	if outcome.ExitCode() != 0 {
		t.Errorf("expected exit code 0")
	}
}

func TestRun_EmptyStore(t *testing.T) {
	p := &fakePresenter{}
	r, out := newRunner(store.NewMemoryLoader(), p)

	outcome, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("empty store is not an error: %v", err)
	}
	if outcome != Empty || outcome.ExitCode() != 0 {
		t.Errorf("expected empty outcome with exit 0, got %s/%d", outcome, outcome.ExitCode())
	}
	if p.calls != 0 {
		t.Error("nothing should be presented for an empty store")
	}
	if strings.TrimSpace(out.String()) != MsgEmpty {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRun_MissingStore(t *testing.T) {
	p := &fakePresenter{}
	r, out := newRunner(store.NewSQLiteLoader(filepath.Join(t.TempDir(), "railtracker.db")), p)

	outcome, err := r.Run(context.Background())
	var dae *store.DataAccessError
	if !errors.As(err, &dae) {
		t.Fatalf("expected DataAccessError, got %v", err)
	}
	if outcome != DataAccessFailed || outcome.ExitCode() == 0 {
		t.Errorf("expected non-zero data access outcome, got %s", outcome)
	}
	if p.calls != 0 {
		t.Error("nothing should be presented when the store is missing")
	}
	if !strings.Contains(out.String(), "collector has run") {
		t.Errorf("expected guidance message, got %q", out.String())
	}
}

func TestRun_MalformedTimestamp(t *testing.T) {
	p := &fakePresenter{}
	r, out := newRunner(store.NewMemoryLoader(
		row("2025-12-01T10:00:00.000Z", "ICE 567", "08:10", 49.99),
		row("not-a-date", "ICE 567", "08:10", 55.99),
	), p)

	outcome, err := r.Run(context.Background())
	if outcome != MalformedData || outcome.ExitCode() != 2 {
		t.Fatalf("expected malformed outcome, got %s (%v)", outcome, err)
	}
	if p.calls != 0 {
		t.Error("no chart should be presented for malformed data")
	}
	msg := out.String()
	if !strings.Contains(msg, "fetch_timestamp") || !strings.Contains(msg, "row 2") || !strings.Contains(msg, "not-a-date") {
		t.Errorf("message should name field, row and value, got %q", msg)
	}
}

func TestRun_RenderEnvironment(t *testing.T) {
	p := &fakePresenter{err: &chart.RenderEnvironmentError{Op: "open window", Err: errors.New("no display")}}
	r, out := newRunner(store.NewMemoryLoader(row("2025-12-01T10:00:00Z", "ICE 1", "08:10", 10)), p)

	outcome, _ := r.Run(context.Background())
	if outcome != RenderFailed || outcome.ExitCode() != 3 {
		t.Fatalf("expected render failure, got %s", outcome)
	}
	if !strings.Contains(out.String(), "Cannot display chart: no display") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRun_UnexpectedLoaderError(t *testing.T) {
	l := &store.MemoryLoader{Err: errors.New("boom")}
	r, out := newRunner(l, &fakePresenter{})

	outcome, err := r.Run(context.Background())
	if outcome != Failed || err == nil {
		t.Fatalf("expected generic failure, got %s (%v)", outcome, err)
	}
	if !strings.Contains(out.String(), "boom") {
		t.Errorf("unexpected output %q", out.String())
	}
}
