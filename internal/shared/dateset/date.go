package dateset

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/danny20232023/hris-sub007/internal/shared/apperror"
)

// Layout is the canonical (and persisted) form of a Date.
const Layout = "2006-01-02"

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidDateFormat,
		"invalid date format, expected YYYY-MM-DD, MM/DD/YYYY or ISO-8601",
		http.StatusBadRequest,
	)
	ErrEmptyDateSet = apperror.New(
		apperror.CodeEmptyDateSet,
		"at least one date is required",
		http.StatusBadRequest,
	)
)

// InvalidDateDetails lists the raw inputs that could not be normalized.
type InvalidDateDetails struct {
	Invalid []string `json:"invalid"`
}

var dateOnlyLayouts = []string{
	Layout,
	"1/2/2006",
}

// Inputs carrying a time are reduced to the calendar day as written; the offset is never applied.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Date is a calendar day with no time of day and no zone.
type Date struct {
	t time.Time
}

func Of(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime keeps the wall-clock day of t in its own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Of(y, m, d)
}

func Normalize(raw string) (Date, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Date{}, ErrInvalidDateFormat
	}
	for _, layout := range dateOnlyLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return FromTime(t), nil
		}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return FromTime(t), nil
		}
	}
	return Date{}, apperror.WithDetails(ErrInvalidDateFormat, InvalidDateDetails{Invalid: []string{raw}})
}

// MustNormalize panics on invalid input. Intended for literals and tests.
func MustNormalize(raw string) Date {
	d, err := Normalize(raw)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

// Time returns midnight UTC of the day, suitable for DATE columns.
func (d Date) Time() time.Time { return d.t }

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Compare(o Date) int { return d.t.Compare(o.t) }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := Normalize(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
