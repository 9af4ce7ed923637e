package report

import (
	"time"

	"baristasalary/model"
	"baristasalary/service"
)

const (
	defaultSpanDays = 7
	maxRangeDays    = 366
)

// Now is the clock used for default date ranges.
var Now = time.Now

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DefaultRange spans a week back and a week ahead of now.
func DefaultRange(now time.Time) DateRange {
	today := model.Day(now)
	return DateRange{
		Start: today.AddDate(0, 0, -defaultSpanDays),
		End:   today.AddDate(0, 0, defaultSpanDays),
	}
}

// ParseRange reads optional YYYY-MM-DD bounds; a missing bound falls back to
// the default range around now.
func ParseRange(start, end string, now time.Time) (DateRange, error) {
	r := DefaultRange(now)

	if start != "" {
		t, err := model.ParseDay(start)
		if err != nil {
			return DateRange{}, inputErr("start_date must be a date in YYYY-MM-DD format")
		}
		r.Start = t
	}
	if end != "" {
		t, err := model.ParseDay(end)
		if err != nil {
			return DateRange{}, inputErr("end_date must be a date in YYYY-MM-DD format")
		}
		r.End = t
	}

	if r.Start.After(r.End) {
		return DateRange{}, inputErr("start_date must not be after end_date")
	}
	if r.Len() > maxRangeDays {
		return DateRange{}, inputErr("date range is limited to 366 days")
	}
	return r, nil
}

// Len is the number of days in the range, both ends included.
func (r DateRange) Len() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, r.Len())
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (r DateRange) StartDate() string { return r.Start.Format(model.DateLayout) }
func (r DateRange) EndDate() string   { return r.End.Format(model.DateLayout) }

// inputErr reports bad caller input as a validation error.
func inputErr(msg string) error {
	return &service.ValidationError{Err: service.ErrInvalid, Message: msg}
}
