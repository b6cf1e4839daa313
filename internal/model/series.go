package model

import "time"

// Point is a shaped Observation ready to be plotted.
type Point struct {
	Index     int // position in the loader output
	FetchedAt time.Time
	Price     float64
}

// Series holds all points of one train connection, oldest fetch first.
type Series struct {
	Label  string
	Points []Point
}

// Times returns the x values of the series.
func (s *Series) Times() []time.Time {
	xs := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.FetchedAt
	}
	return xs
}

// Prices returns the y values of the series.
func (s *Series) Prices() []float64 {
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.Price
	}
	return ys
}

// Dataset is the shaper output: one Series per connection in first-seen order,
// plus the journey date of the first observation and the first currency seen.
type Dataset struct {
	Series      []*Series
	JourneyDate string
	Currency    string

	byLabel map[string]*Series
}

// NewDataset returns an empty Dataset.
func NewDataset() *Dataset {
	return &Dataset{byLabel: make(map[string]*Series)}
}

// Lookup returns the series for label, if present.
func (d *Dataset) Lookup(label string) (*Series, bool) {
	s, ok := d.byLabel[label]
	return s, ok
}

// Add appends p to the series for label, creating it on first sight.
func (d *Dataset) Add(label string, p Point) {
	if d.byLabel == nil {
		d.byLabel = make(map[string]*Series)
	}
	s, ok := d.byLabel[label]
	if !ok {
		s = &Series{Label: label}
		d.byLabel[label] = s
		d.Series = append(d.Series, s)
	}
	s.Points = append(s.Points, p)
}

// Len returns the total number of points across all series.
func (d *Dataset) Len() int {
	n := 0
	for _, s := range d.Series {
		n += len(s.Points)
	}
	return n
}
