package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"salesdash/models"
)

const (
	DefaultExcelPath  = "datasets/supermarket_sales.xlsx"
	DefaultExcelSheet = "Sales"
	defaultSkipRows   = 3
	defaultFirstCol   = "B"
	defaultLastCol    = "R"
)

// Header names, normalized by normalizeHeader.
const (
	colInvoiceID    = "invoice id"
	colBranch       = "branch"
	colCity         = "city"
	colCustomerType = "customer type"
	colGender       = "gender"
	colProductLine  = "product line"
	colQuantity     = "quantity"
	colTotal        = "total"
	colDate         = "date"
	colTime         = "time"
	colPayment      = "payment"
	colRating       = "rating"
)

var requiredColumns = []string{colCity, colCustomerType, colGender, colProductLine, colTotal, colRating, colTime}

// ExcelSource reads the sales sheet from an xlsx workbook. The layout is fixed:
// SkipRows rows of preamble, then a header row, then data, all within
// FirstColumn..LastColumn.
type ExcelSource struct {
	Path        string
	Sheet       string
	SkipRows    int
	FirstColumn string
	LastColumn  string
	Logger      *slog.Logger
}

func NewExcelSource(path, sheet string, logger *slog.Logger) *ExcelSource {
	if path == "" {
		path = DefaultExcelPath
	}
	if sheet == "" {
		sheet = DefaultExcelSheet
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelSource{
		Path:        path,
		Sheet:       sheet,
		SkipRows:    defaultSkipRows,
		FirstColumn: defaultFirstCol,
		LastColumn:  defaultLastCol,
		Logger:      logger,
	}
}

func (s *ExcelSource) Load(ctx context.Context) ([]models.SalesRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, s.Path)
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnreadableSource, s.Path, err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(s.Sheet); err != nil || idx == -1 {
		return nil, fmt.Errorf("%w: sheet %q in %s", ErrSourceNotFound, s.Sheet, s.Path)
	}

	// Stored values, not display text: number formats must not round totals.
	rows, err := f.GetRows(s.Sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrUnreadableSource, s.Sheet, err)
	}

	first, err := excelize.ColumnNameToNumber(s.FirstColumn)
	if err != nil {
		return nil, fmt.Errorf("first column %q: %w", s.FirstColumn, err)
	}
	last, err := excelize.ColumnNameToNumber(s.LastColumn)
	if err != nil {
		return nil, fmt.Errorf("last column %q: %w", s.LastColumn, err)
	}

	if len(rows) <= s.SkipRows {
		return nil, fmt.Errorf("%w: no header row after %d skipped rows", ErrMissingColumn, s.SkipRows)
	}

	window := func(row []string) []string {
		out := make([]string, last-first+1)
		for i := range out {
			if idx := first - 1 + i; idx < len(row) {
				out[i] = strings.TrimSpace(row[idx])
			}
		}
		return out
	}

	columns, err := mapHeader(window(rows[s.SkipRows]))
	if err != nil {
		return nil, err
	}

	records := make([]models.SalesRecord, 0, len(rows)-s.SkipRows-1)
	for i := s.SkipRows + 1; i < len(rows); i++ {
		cells := window(rows[i])
		if isBlank(cells) {
			continue
		}
		rec, err := parseRow(cells, columns)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Row = i + 1
			}
			return nil, err
		}
		records = append(records, rec)
	}

	s.Logger.Info("sales sheet loaded", "path", s.Path, "sheet", s.Sheet, "rows", len(records))
	return records, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "_", " ")
	return strings.Join(strings.Fields(h), " ")
}

func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := normalizeHeader(h)
		if name == "" {
			continue
		}
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return columns, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

func parseRow(cells []string, columns map[string]int) (models.SalesRecord, error) {
	get := func(name string) string {
		if idx, ok := columns[name]; ok {
			return cells[idx]
		}
		return ""
	}

	rec := models.SalesRecord{
		InvoiceID:    get(colInvoiceID),
		Branch:       get(colBranch),
		City:         get(colCity),
		CustomerType: get(colCustomerType),
		Gender:       get(colGender),
		ProductLine:  get(colProductLine),
		Date:         parseDate(get(colDate)),
		Payment:      get(colPayment),
	}

	total, err := parseAmount(get(colTotal))
	if err != nil {
		return rec, &ParseError{Column: "Total", Value: get(colTotal), Err: err}
	}
	rec.Total = total

	rating, err := strconv.ParseFloat(get(colRating), 64)
	if err != nil {
		return rec, &ParseError{Column: "Rating", Value: get(colRating), Err: err}
	}
	rec.Rating = rating

	if q := get(colQuantity); q != "" {
		qty, err := strconv.Atoi(q)
		if err != nil {
			return rec, &ParseError{Column: "Quantity", Value: q, Err: err}
		}
		rec.Quantity = qty
	}

	clock, err := ParseClock(get(colTime))
	if err != nil {
		return rec, err
	}
	rec.Time = clock
	rec.Hour = clock.Hour()

	return rec, nil
}

func parseAmount(v string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(v))
}

// parseDate turns a date serial into YYYY-MM-DD; text dates are kept as written.
func parseDate(v string) string {
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return v
	}
	return t.Format("2006-01-02")
}
