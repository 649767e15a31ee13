package dates

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-module/carbon/v2"
)

// Layout is the only accepted date format, both for command arguments
// and for user-facing output.
const Layout = "02-01-2006"

var ErrInvalidDate = errors.New("date is not valid")

// Date is a naive calendar date, no location attached.
type Date struct {
	Day   int
	Month int
	Year  int
}

// Parse parses a strict dd-mm-yyyy date and rejects out-of-range
// calendar values (including 29 February outside leap years).
func Parse(text string) (Date, error) {
	c := carbon.ParseByLayout(text, Layout)
	if c.Error != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Day: c.Day(), Month: c.Month(), Year: c.Year()}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, d.Month, d.Year)
}

// Age returns the number of completed years at the given moment.
// The year part of now is decremented by one when the birthday has not
// occurred yet in now's calendar year.
func (d Date) Age(now time.Time) int {
	age := now.Year() - d.Year
	if int(now.Month()) < d.Month || (int(now.Month()) == d.Month && now.Day() < d.Day) {
		age--
	}
	return age
}

// IsToday reports whether now falls on the same day and month,
// the year is ignored.
func (d Date) IsToday(now time.Time) bool {
	return d.Matches(now.Day(), int(now.Month()))
}

func (d Date) Matches(day int, month int) bool {
	return d.Day == day && d.Month == month
}
