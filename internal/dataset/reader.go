package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing order_date.
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"2006/01/02",
}

// ParseError reports a value that could not be parsed.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %s: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReadFile reads the dataset at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Read reads the whole dataset from r. The header row is matched by
// name; extra columns are ignored.
func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("dataset is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		rec, err := parseRow(row, index, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

// rowParser collects the first parse failure of a row.
type rowParser struct {
	row   []string
	index map[string]int
	line  int
	err   error
}

func (p *rowParser) str(col string) string {
	return strings.TrimSpace(p.row[p.index[col]])
}

func (p *rowParser) fail(col, value string, err error) {
	if p.err == nil {
		p.err = &ParseError{Line: p.line, Column: col, Value: value, Err: err}
	}
}

func (p *rowParser) id(col string) string {
	s := p.str(col)
	if s == "" {
		p.fail(col, s, fmt.Errorf("empty key"))
	}
	return s
}

func (p *rowParser) int32(col string) int32 {
	s := p.str(col)
	v, err := ParseInt(s)
	if err != nil {
		p.fail(col, s, err)
	}
	return v
}

func (p *rowParser) float(col string) float64 {
	s := p.str(col)
	v, err := ParseFloat(s)
	if err != nil {
		p.fail(col, s, err)
	}
	return v
}

func (p *rowParser) bool(col string) bool {
	s := p.str(col)
	v, err := ParseBool(s)
	if err != nil {
		p.fail(col, s, err)
	}
	return v
}

func (p *rowParser) date(col string) time.Time {
	s := p.str(col)
	v, err := ParseDate(s)
	if err != nil {
		p.fail(col, s, err)
	}
	return v
}

func parseRow(row []string, index map[string]int, line int) (Record, error) {
	p := &rowParser{row: row, index: index, line: line}
	rec := Record{
		CustomerID:     p.id(ColCustomerID),
		CustomerAge:    p.int32(ColCustomerAge),
		CustomerGender: p.str(ColCustomerGender),
		Region:         p.str(ColRegion),
		ProductID:      p.id(ColProductID),
		Category:       p.str(ColCategory),
		Price:          p.float(ColPrice),
		OrderID:        p.id(ColOrderID),
		OrderDate:      p.date(ColOrderDate),
		PaymentMethod:  p.str(ColPaymentMethod),
		ShippingCost:   p.float(ColShippingCost),
		DeliveryDays:   p.int32(ColDeliveryTimeDays),
		Quantity:       p.int32(ColQuantity),
		Discount:       p.float(ColDiscount),
		TotalAmount:    p.float(ColTotalAmount),
		ProfitMargin:   p.float(ColProfitMargin),
		Returned:       p.bool(ColReturned),
	}
	if p.err != nil {
		return Record{}, p.err
	}
	return rec, nil
}

// ParseInt parses a 32-bit integer. Whole floats such as "3.0", as
// written by dataframe exports, are accepted.
func ParseInt(s string) (int32, error) {
	if v, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int32(v), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("not an integer")
	}
	return int32(f), nil
}

// ParseFloat parses a finite decimal number. NaN and infinities are
// rejected.
func ParseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return v, nil
}

// ParseBool accepts true/false, 1/0, yes/no and y/n in any case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "t", "1", "yes", "y":
		return true, nil
	case "false", "f", "0", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean")
}

// ParseDate parses a calendar date in one of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date format")
}
