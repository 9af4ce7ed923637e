package report

import (
	"baristasalary/model"
)

type IncomeRow struct {
	Date   string `json:"date"`
	Income int    `json:"income"`
	ID     *uint  `json:"id"`
}

// IncomeRows lays incomes out as one row per day of r. Days without an
// income get zero and no id. It also returns the range total.
func IncomeRows(incomes []model.Income, r DateRange) ([]IncomeRow, int) {
	byDay := make(map[string]model.Income, len(incomes))
	for _, inc := range incomes {
		byDay[inc.Date.Format(model.DateLayout)] = inc
	}

	rows := make([]IncomeRow, 0, r.Len())
	total := 0
	for _, d := range r.Days() {
		day := d.Format(model.DateLayout)
		row := IncomeRow{Date: day}
		if inc, ok := byDay[day]; ok {
			id := inc.ID
			row.Income = inc.Amount
			row.ID = &id
			total += inc.Amount
		}
		rows = append(rows, row)
	}
	return rows, total
}

type ScheduleCell struct {
	Name      string `json:"name"`
	ShiftID   uint   `json:"shift_id"`
	BaristaID uint   `json:"barista_id"`
}

// ScheduleRow has one cell per cafe; a nil cell means nobody is on shift.
type ScheduleRow struct {
	Date  string          `json:"date"`
	Cells []*ScheduleCell `json:"cells"`
}

type Schedule struct {
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	ColumnHeaders []string      `json:"column_headers"`
	CafeIDs       []uint        `json:"cafe_ids"`
	Rows          []ScheduleRow `json:"rows"`
}

// BuildSchedule lays shifts out as a day × cafe grid. Shifts must have their
// Barista loaded; shifts of cafes not in cafes are ignored.
func BuildSchedule(cafes []model.Cafe, shifts []model.Shift, r DateRange) *Schedule {
	s := &Schedule{
		StartDate:     r.StartDate(),
		EndDate:       r.EndDate(),
		ColumnHeaders: make([]string, len(cafes)),
		CafeIDs:       make([]uint, len(cafes)),
	}
	column := make(map[uint]int, len(cafes))
	for i, c := range cafes {
		s.ColumnHeaders[i] = c.Name
		s.CafeIDs[i] = c.ID
		column[c.ID] = i
	}

	rowIdx := make(map[string]int, r.Len())
	for i, d := range r.Days() {
		day := d.Format(model.DateLayout)
		rowIdx[day] = i
		s.Rows = append(s.Rows, ScheduleRow{Date: day, Cells: make([]*ScheduleCell, len(cafes))})
	}

	for _, sh := range shifts {
		col, ok := column[sh.CafeID]
		if !ok {
			continue
		}
		row, ok := rowIdx[sh.Date.Format(model.DateLayout)]
		if !ok {
			continue
		}
		cell := &ScheduleCell{ShiftID: sh.ID, BaristaID: sh.BaristaID}
		if sh.Barista != nil {
			cell.Name = sh.Barista.FullName
		}
		s.Rows[row].Cells[col] = cell
	}
	return s
}

// RateCell holds one barista's rate at one cafe; the parameters are nil when
// the barista has no rate there.
type RateCell struct {
	CafeID   uint   `json:"cafe_id"`
	CafeName string `json:"cafe_name"`
	RateID   *uint  `json:"rate_id"`
	MinWage  *int   `json:"min_wage"`
	Percent  *int   `json:"percent"`
	Additive *int   `json:"additive"`
}

func (c RateCell) HasRate() bool { return c.RateID != nil }

type RateRow struct {
	BaristaID uint       `json:"barista_id"`
	FullName  string     `json:"full_name"`
	Cells     []RateCell `json:"cells"`
}

type RateTable struct {
	CafeList []string  `json:"cafe_list"`
	Rows     []RateRow `json:"rows"`
}

// BuildRateTable crosses every barista with every cafe.
func BuildRateTable(baristas []model.Barista, cafes []model.Cafe, rates []model.Rate) *RateTable {
	type key struct{ barista, cafe uint }
	byPair := make(map[key]model.Rate, len(rates))
	for _, rt := range rates {
		byPair[key{rt.BaristaID, rt.CafeID}] = rt
	}

	t := &RateTable{CafeList: make([]string, len(cafes)), Rows: make([]RateRow, 0, len(baristas))}
	for i, c := range cafes {
		t.CafeList[i] = c.Name
	}

	for _, b := range baristas {
		row := RateRow{BaristaID: b.ID, FullName: b.FullName, Cells: make([]RateCell, len(cafes))}
		for i, c := range cafes {
			cell := RateCell{CafeID: c.ID, CafeName: c.Name}
			if rt, ok := byPair[key{b.ID, c.ID}]; ok {
				id, minWage, percent, additive := rt.ID, rt.MinWage, rt.Percent, rt.Additive
				cell.RateID = &id
				cell.MinWage = &minWage
				cell.Percent = &percent
				cell.Additive = &additive
			}
			row.Cells[i] = cell
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
