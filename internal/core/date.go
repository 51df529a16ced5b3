package core

import (
	"errors"
	"time"
)

// Date is a calendar date at UTC midnight.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses the workbook's MM/DD/YYYY form, falling back to ISO.
func ParseDate(s string) (Date, error) {
	for _, layout := range []string{"01/02/2006", "2006-01-02", "1/2/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t.UTC()}, nil
		}
	}
	return Date{}, errors.New("unparseable date " + s)
}

// Validate rejects the zero date.
func (d Date) Validate() error {
	if d.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int { return d.Time.Day() }

// Month returns the month as 1-12.
func (d Date) Month() int { return int(d.Time.Month()) }

// Year returns the year.
func (d Date) Year() int { return d.Time.Year() }

// Quarter returns the quarter as 1-4.
func (d Date) Quarter() int { return (d.Month()-1)/3 + 1 }

// Key returns a sortable yyyy-mm-dd string used in identity tuples.
func (d Date) Key() string { return d.Format("2006-01-02") }

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }

// After reports whether d falls strictly after other.
func (d Date) After(other Date) bool { return d.Time.After(other.Time) }

// Equal reports calendar-date equality.
func (d Date) Equal(other Date) bool { return d.Time.Equal(other.Time) }

// InSameMonth reports whether d and other share year and month.
func (d Date) InSameMonth(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month()
}

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date {
	first := time.Date(d.Year(), d.Time.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Date{Time: first.AddDate(0, 1, -1)}
}

// AddYears returns d shifted by n calendar years.
func (d Date) AddYears(n int) Date {
	return Date{Time: d.Time.AddDate(n, 0, 0)}
}

// DaysBetween returns the absolute number of days between a and b.
func DaysBetween(a, b Date) int {
	days := int(b.Time.Sub(a.Time).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// MonthEnds returns the end-of-month dates covering first..last inclusive.
func MonthEnds(first, last Date) []Date {
	if first.IsZero() || last.IsZero() || last.Before(first) {
		return nil
	}
	var out []Date
	cur := first.EndOfMonth()
	stop := last.EndOfMonth()
	for !cur.After(stop) {
		out = append(out, cur)
		cur = NewDate(cur.Year(), cur.Month(), 1)
		cur = Date{Time: cur.Time.AddDate(0, 1, 0)}.EndOfMonth()
	}
	return out
}

// QuarterEnds returns the four quarter-end dates of year.
func QuarterEnds(year int) [4]Date {
	return [4]Date{
		NewDate(year, 3, 31),
		NewDate(year, 6, 30),
		NewDate(year, 9, 30),
		NewDate(year, 12, 31),
	}
}
