package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	sq "github.com/Masterminds/squirrel"
	"github.com/guregu/null/v6"
	"github.com/rs/zerolog/log"

	"railtracker/internal/model"

	_ "modernc.org/sqlite"
)

// PricesTable is the table the collector appends fare checks to.
const PricesTable = "prices"

// SQLiteLoader reads observations from the collector's SQLite file.
type SQLiteLoader struct {
	Path string
}

// NewSQLiteLoader creates a loader for the database at dbPath.
func NewSQLiteLoader(dbPath string) *SQLiteLoader {
	return &SQLiteLoader{Path: dbPath}
}

// CurrencyColumn is written by the collector but not required of older stores.
const CurrencyColumn = "currency"

func selectObservations(withCurrency bool) sq.SelectBuilder {
	cols := []string{"fetch_timestamp", "train_name", "price_amount", "journey_date", "departure_time"}
	if withCurrency {
		cols = append(cols, CurrencyColumn)
	}
	return sq.Select(cols...).
		From(PricesTable).
		OrderBy("fetch_timestamp ASC")
}

func hasColumn(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	var n int
	err := sq.Select("COUNT(*)").
		From(fmt.Sprintf("pragma_table_info('%s')", table)).
		Where(sq.Eq{"name": column}).
		RunWith(db).
		QueryRowContext(ctx).
		Scan(&n)
	return n > 0, err
}

// LoadObservations opens the database, reads all rows and closes it again.
// The connection is never held past the call.
func (l *SQLiteLoader) LoadObservations(ctx context.Context) ([]model.Observation, error) {
	// The driver creates missing files, which would turn a missing store into an empty one.
	if _, err := os.Stat(l.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &DataAccessError{Path: l.Path, Op: "open", Err: fmt.Errorf("database file not found")}
		}
		return nil, &DataAccessError{Path: l.Path, Op: "stat", Err: err}
	}

	db, err := sql.Open("sqlite", l.Path)
	if err != nil {
		return nil, &DataAccessError{Path: l.Path, Op: "open", Err: err}
	}
	defer db.Close()

	withCurrency, err := hasColumn(ctx, db, PricesTable, CurrencyColumn)
	if err != nil {
		return nil, &DataAccessError{Path: l.Path, Op: "inspect schema", Err: err}
	}

	rows, err := selectObservations(withCurrency).RunWith(db).QueryContext(ctx)
	if err != nil {
		return nil, &DataAccessError{Path: l.Path, Op: "query", Err: err}
	}
	defer rows.Close()

	obs := []model.Observation{}
	for rows.Next() {
		var o model.Observation
		var fetched, trainName, journeyDate null.String
		dest := []interface{}{&fetched, &trainName, &o.PriceAmount, &journeyDate, &o.DepartureTime}
		if withCurrency {
			dest = append(dest, &o.Currency)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, &DataAccessError{Path: l.Path, Op: fmt.Sprintf("scan row %d", len(obs)), Err: err}
		}
		o.FetchTimestamp = fetched.String
		o.TrainName = trainName.String
		o.JourneyDate = journeyDate.String
		obs = append(obs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, &DataAccessError{Path: l.Path, Op: "read rows", Err: err}
	}

	log.Debug().Str("path", l.Path).Int("rows", len(obs)).Msg("observations loaded")
	return obs, nil
}
