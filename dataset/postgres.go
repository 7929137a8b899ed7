package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v4"

	"salesdash/models"
)

const DefaultSalesTable = "supermarket_sales"

// Querier is the part of a pgx pool the Postgres source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// PostgresSource reads the sales table from Postgres. It expects the same
// columns as the sheet, with sale_time stored as a time column.
type PostgresSource struct {
	DB     Querier
	Table  string
	Logger *slog.Logger
}

func NewPostgresSource(db Querier, table string, logger *slog.Logger) *PostgresSource {
	if table == "" {
		table = DefaultSalesTable
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSource{DB: db, Table: table, Logger: logger}
}

func (s *PostgresSource) query() string {
	table := pgx.Identifier(strings.Split(s.Table, ".")).Sanitize()
	return `
        SELECT invoice_id, branch, city, customer_type, gender, product_line,
               quantity, total::text, sale_date::text, to_char(sale_time, 'HH24:MI:SS'),
               payment, rating
        FROM ` + table + `
        ORDER BY invoice_id
    `
}

func (s *PostgresSource) Load(ctx context.Context) ([]models.SalesRecord, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("%w: no database connection", ErrSourceNotFound)
	}

	rows, err := s.DB.Query(ctx, s.query())
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrSourceNotFound, s.Table, err)
	}
	defer rows.Close()

	records := make([]models.SalesRecord, 0)
	line := 0
	for rows.Next() {
		line++
		var (
			rec                              models.SalesRecord
			invoiceID, branch, date, payment sql.NullString
			quantity                         sql.NullInt64
			total, clock                     string
		)
		if err := rows.Scan(&invoiceID, &branch, &rec.City, &rec.CustomerType, &rec.Gender, &rec.ProductLine,
			&quantity, &total, &date, &clock, &payment, &rec.Rating); err != nil {
			return nil, fmt.Errorf("%w: scan row %d: %v", ErrUnreadableSource, line, err)
		}
		rec.InvoiceID = invoiceID.String
		rec.Branch = branch.String
		rec.Date = date.String
		rec.Payment = payment.String
		rec.Quantity = int(quantity.Int64)

		if rec.Total, err = parseAmount(total); err != nil {
			return nil, &ParseError{Row: line, Column: "Total", Value: total, Err: err}
		}
		t, err := ParseClock(clock)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Row = line
			}
			return nil, err
		}
		rec.Time = t
		rec.Hour = t.Hour()

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s: %v", ErrUnreadableSource, s.Table, err)
	}

	s.Logger.Info("sales table loaded", "table", s.Table, "rows", len(records))
	return records, nil
}
