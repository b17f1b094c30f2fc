package ingest

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dataniaga/pkg/contracts/domain"
)

// emptyValue is the sentinel recorded for a blank offending cell.
const emptyValue = "(empty)"

// Reason strings surfaced in row errors. Downstream rendering relies on
// these exact phrases, so they stay stable.
const (
	reasonInvoiceEmpty     = "number must not be empty"
	reasonDuplicateInvoice = "duplicate invoice number"
	reasonEmpty            = "must not be empty"
	reasonWrongDateFormat  = "wrong date format"
	reasonInvalidDate      = "invalid date"
	reasonNotNumeric       = "must be numeric"
	reasonNotPositive      = "must be greater than zero"
	reasonNotWhole         = "must be a whole number"
	reasonUnknownRegion    = "region is not in the standard island list"
)

var (
	dateISO   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateDMY   = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	numericRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// Accumulator carries the cross-row state of one validation run: the set
// of invoice numbers seen so far, the distinct category and region sets
// feeding the corpus-level checks, region warnings, and the valid-row
// counter. It is created fresh per run and threaded through ValidateRow;
// nothing leaks across runs.
type Accumulator struct {
	SeenInvoices map[string]struct{}
	Categories   map[string]struct{}
	Regions      map[string]struct{}
	Warnings     []domain.ValidationWarning
	ValidRows    int
}

// NewAccumulator returns an empty accumulator for a single run.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		SeenInvoices: make(map[string]struct{}),
		Categories:   make(map[string]struct{}),
		Regions:      make(map[string]struct{}),
	}
}

// ValidateRow runs every field rule against one record and returns the
// row's errors in field-declaration order (InvoiceNo, InvoiceDate, PULAU,
// PRODUCT_CATEGORY, Quantity). Fields are independent: a row can fail
// several at once. Within a field only the first violated check is
// reported. The accumulator is updated as a side channel for duplicate
// tracking, distinct-value sets and advisory region warnings.
func ValidateRow(rec domain.Record, rowNumber int, acc *Accumulator, opts Options) []domain.ValidationError {
	var errs []domain.ValidationError
	add := func(field, value, reason string) {
		if value == "" {
			value = emptyValue
		}
		errs = append(errs, domain.ValidationError{
			Field:     field,
			RowNumber: rowNumber,
			Value:     value,
			Reason:    reason,
		})
	}

	validateInvoiceNo(rec[ColInvoiceNo], add, acc, opts)
	validateInvoiceDate(rec[ColInvoiceDate], add)
	validateRegion(rec[ColRegion], rowNumber, add, acc, opts)
	validateCategory(rec[ColCategory], add, acc)
	validateQuantity(rec[ColQuantity], add)

	if len(errs) == 0 {
		acc.ValidRows++
	}
	return errs
}

func validateInvoiceNo(v string, add func(field, value, reason string), acc *Accumulator, opts Options) {
	if v == "" {
		add(ColInvoiceNo, v, reasonInvoiceEmpty)
		return
	}
	// One invoice spans multiple line-item rows, so repeats are expected
	// under the default policy; the tracker is maintained regardless.
	if _, seen := acc.SeenInvoices[v]; seen && opts.DuplicatePolicy == RejectDuplicates {
		add(ColInvoiceNo, v, reasonDuplicateInvoice)
	}
	acc.SeenInvoices[v] = struct{}{}
}

func validateInvoiceDate(v string, add func(field, value, reason string)) {
	if v == "" {
		add(ColInvoiceDate, v, reasonEmpty)
		return
	}
	var layout string
	switch {
	case dateISO.MatchString(v):
		layout = "2006-01-02"
	case dateDMY.MatchString(v):
		layout = "02/01/2006"
	default:
		add(ColInvoiceDate, v, reasonWrongDateFormat)
		return
	}
	// time.Parse rejects impossible calendar dates (2024-02-30, month 13).
	if _, err := time.Parse(layout, v); err != nil {
		add(ColInvoiceDate, v, reasonInvalidDate)
	}
}

func validateRegion(v string, rowNumber int, add func(field, value, reason string), acc *Accumulator, opts Options) {
	if v == "" {
		add(ColRegion, v, reasonEmpty)
		return
	}
	acc.Regions[v] = struct{}{}

	if opts.RegionPolicy == RegionFreeText {
		return
	}
	for _, region := range opts.Regions {
		if strings.EqualFold(v, region) {
			return
		}
	}
	switch opts.RegionPolicy {
	case RegionReject:
		add(ColRegion, v, reasonUnknownRegion)
	case RegionWarn:
		acc.Warnings = append(acc.Warnings, domain.ValidationWarning(
			fmt.Sprintf("row %d: region %q is not in the standard island list", rowNumber, v)))
	}
}

func validateCategory(v string, add func(field, value, reason string), acc *Accumulator) {
	if v == "" {
		add(ColCategory, v, reasonEmpty)
		return
	}
	acc.Categories[v] = struct{}{}
}

func validateQuantity(v string, add func(field, value, reason string)) {
	if v == "" {
		add(ColQuantity, v, reasonEmpty)
		return
	}
	if !numericRe.MatchString(v) {
		add(ColQuantity, v, reasonNotNumeric)
		return
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		add(ColQuantity, v, reasonNotNumeric)
		return
	}
	if n <= 0 {
		add(ColQuantity, v, reasonNotPositive)
		return
	}
	if math.Trunc(n) != n {
		add(ColQuantity, v, reasonNotWhole)
	}
}
