package dateset

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/danny20232023/hris-sub007/internal/shared/apperror"
)

const storageSeparator = ","

// Set is an ascending, duplicate-free collection of dates.
// Build it with New or Parse; the set operations below rely on that ordering.
type Set []Date

func New(dates ...Date) Set {
	if len(dates) == 0 {
		return Set{}
	}
	cp := make([]Date, 0, len(dates))
	for _, d := range dates {
		if !d.IsZero() {
			cp = append(cp, d)
		}
	}
	sort.Slice(cp, func(i, j int) bool { return cp[i].Before(cp[j]) })

	out := make(Set, 0, len(cp))
	for _, d := range cp {
		if len(out) > 0 && out[len(out)-1].Equal(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Parse normalizes every raw value; all invalid inputs are reported together.
func Parse(raws []string) (Set, error) {
	dates := make([]Date, 0, len(raws))
	var invalid []string
	for _, raw := range raws {
		d, err := Normalize(raw)
		if err != nil {
			invalid = append(invalid, raw)
			continue
		}
		dates = append(dates, d)
	}
	if len(invalid) > 0 {
		return nil, apperror.WithDetails(ErrInvalidDateFormat, InvalidDateDetails{Invalid: invalid})
	}
	return New(dates...), nil
}

// ParseNonEmpty is Parse plus the non-empty invariant required of submitted requests.
func ParseNonEmpty(raws []string) (Set, error) {
	s, err := Parse(raws)
	if err != nil {
		return nil, err
	}
	if s.IsEmpty() {
		return nil, ErrEmptyDateSet
	}
	return s, nil
}

func Overlaps(a, b Set) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch a[i].Compare(b[j]) {
		case 0:
			return true
		case -1:
			i++
		default:
			j++
		}
	}
	return false
}

func Intersection(a, b Set) Set {
	out := Set{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch a[i].Compare(b[j]) {
		case 0:
			out = append(out, a[i])
			i++
			j++
		case -1:
			i++
		default:
			j++
		}
	}
	return out
}

func Union(a, b Set) Set {
	out := make(Set, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b):
			out = append(out, a[i])
			i++
		case i >= len(a):
			out = append(out, b[j])
			j++
		default:
			switch a[i].Compare(b[j]) {
			case 0:
				out = append(out, a[i])
				i++
				j++
			case -1:
				out = append(out, a[i])
				i++
			default:
				out = append(out, b[j])
				j++
			}
		}
	}
	return out
}

func (s Set) Len() int { return len(s) }

func (s Set) IsEmpty() bool { return len(s) == 0 }

func (s Set) Contains(d Date) bool {
	i := sort.Search(len(s), func(i int) bool { return !s[i].Before(d) })
	return i < len(s) && s[i].Equal(d)
}

// First and Last return the zero Date on an empty set.
func (s Set) First() Date {
	if len(s) == 0 {
		return Date{}
	}
	return s[0]
}

func (s Set) Last() Date {
	if len(s) == 0 {
		return Date{}
	}
	return s[len(s)-1]
}

// Bounds returns the first and last day as DATE column values.
func (s Set) Bounds() (time.Time, time.Time) {
	return s.First().Time(), s.Last().Time()
}

func (s Set) Strings() []string {
	out := make([]string, len(s))
	for i, d := range s {
		out[i] = d.String()
	}
	return out
}

func (s Set) String() string {
	return strings.Join(s.Strings(), storageSeparator)
}

func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (Set) GormDataType() string {
	return "text"
}

// Value stores the set as a comma-delimited list of YYYY-MM-DD.
func (s Set) Value() (driver.Value, error) {
	return s.String(), nil
}

func (s *Set) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*s = Set{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("dateset: cannot scan %T", src)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		*s = Set{}
		return nil
	}
	parts := strings.Split(raw, storageSeparator)
	dates := make([]Date, 0, len(parts))
	for _, p := range parts {
		t, err := time.Parse(Layout, strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("dateset: stored value %q: %w", p, err)
		}
		dates = append(dates, FromTime(t))
	}
	*s = New(dates...)
	return nil
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

func (s *Set) UnmarshalJSON(b []byte) error {
	var raws []string
	if err := json.Unmarshal(b, &raws); err != nil {
		return err
	}
	parsed, err := Parse(raws)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
