// Package shaper turns stored observations into one plot series per train connection.
package shaper

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"railtracker/internal/model"
)

const (
	FieldFetchTimestamp = "fetch_timestamp"
	FieldDepartureTime  = "departure_time"
	FieldPriceAmount    = "price_amount"
)

// Label names a connection, e.g. "ICE 567 (08:10)".
func Label(trainName string, departure time.Time) string {
	return trainName + " (" + departure.Format("15:04") + ")"
}

// Shape groups observations by connection label. Labels keep the order in
// which they first appear; points inside a series are ordered by fetch time,
// ties keeping their input order. Any unparsable temporal field aborts the
// whole run with a *MalformedDataError.
func Shape(obs []model.Observation) (*model.Dataset, error) {
	ds := model.NewDataset()
	if len(obs) == 0 {
		return ds, nil
	}
	ds.JourneyDate = FormatJourneyDate(obs[0].JourneyDate)

	for i, o := range obs {
		fetchedAt, err := ParseInstant(o.FetchTimestamp)
		if err != nil {
			return nil, &MalformedDataError{Row: i, Field: FieldFetchTimestamp, Value: o.FetchTimestamp, Err: err}
		}
		if !o.DepartureTime.Valid {
			return nil, &MalformedDataError{Row: i, Field: FieldDepartureTime, Value: "NULL", Err: errors.New("missing departure time")}
		}
		departure, err := ParseDeparture(o.DepartureTime.String)
		if err != nil {
			return nil, &MalformedDataError{Row: i, Field: FieldDepartureTime, Value: o.DepartureTime.String, Err: err}
		}
		if !o.PriceAmount.Valid {
			return nil, &MalformedDataError{Row: i, Field: FieldPriceAmount, Value: "NULL", Err: errors.New("missing price")}
		}

		if ds.Currency == "" && o.Currency.Valid {
			ds.Currency = strings.TrimSpace(o.Currency.String)
		}

		ds.Add(Label(o.TrainName, departure), model.Point{
			Index:     i,
			FetchedAt: fetchedAt,
			Price:     o.PriceAmount.Decimal.InexactFloat64(),
		})
	}

	for _, s := range ds.Series {
		pts := s.Points
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].FetchedAt.Before(pts[b].FetchedAt) })
	}

	log.Debug().Int("observations", len(obs)).Int("series", len(ds.Series)).Msg("observations shaped")
	return ds, nil
}
