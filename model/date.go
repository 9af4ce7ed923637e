package model

import "time"

const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar day. Every date stored in
// shifts and incomes goes through Day so equality lookups match.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}
