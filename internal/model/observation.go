package model

import (
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// Observation is one fare check as written by the collector into the prices table.
// Temporal fields are kept as stored; parsing happens in the shaper.
// NULL text columns arrive as empty strings, except DepartureTime and Currency
// which keep their validity so a missing value can be told from a bad one.
type Observation struct {
	FetchTimestamp string
	TrainName      string
	PriceAmount    decimal.NullDecimal
	JourneyDate    string
	DepartureTime  null.String
	Currency       null.String
}
