package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"baristasalary/logger"
	"baristasalary/model"
	"baristasalary/service"

	"github.com/xuri/excelize/v2"
)

const unassigned = "-"

// WriteSchedule writes the shift schedule as a single-sheet workbook.
func WriteSchedule(w io.Writer, s *Schedule) error {
	header := []interface{}{"Date"}
	for _, name := range s.ColumnHeaders {
		header = append(header, name)
	}

	rows := make([][]interface{}, 0, len(s.Rows))
	for _, r := range s.Rows {
		line := []interface{}{r.Date}
		for _, cell := range r.Cells {
			if cell == nil {
				line = append(line, unassigned)
				continue
			}
			line = append(line, cell.Name)
		}
		rows = append(rows, line)
	}

	return writeSheet(w, "Schedule", header, rows, nil)
}

// WriteCafeIncome writes a cafe's daily incomes followed by the range total.
func WriteCafeIncome(w io.Writer, rep *CafeIncomeReport) error {
	header := []interface{}{"Date", "Income"}
	rows := make([][]interface{}, 0, len(rep.IncomeArray))
	for _, r := range rep.IncomeArray {
		rows = append(rows, []interface{}{r.Date, r.Income})
	}
	footer := []interface{}{"Total", rep.TotalIncome}
	return writeSheet(w, sheetName(rep.Cafe.Name), header, rows, footer)
}

// WriteRateTable writes one row per barista with min wage, percent and
// additive columns for every cafe.
func WriteRateTable(w io.Writer, t *RateTable) error {
	header := []interface{}{"Barista"}
	for _, name := range t.CafeList {
		header = append(header, name+" min wage", name+" %", name+" additive")
	}

	rows := make([][]interface{}, 0, len(t.Rows))
	for _, r := range t.Rows {
		line := []interface{}{r.FullName}
		for _, c := range r.Cells {
			if !c.HasRate() {
				line = append(line, unassigned, unassigned, unassigned)
				continue
			}
			line = append(line, *c.MinWage, *c.Percent, *c.Additive)
		}
		rows = append(rows, line)
	}

	return writeSheet(w, "Rates", header, rows, nil)
}

func writeSheet(w io.Writer, sheet string, header []interface{}, rows [][]interface{}, footer []interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	lines := append([][]interface{}{header}, rows...)
	if footer != nil {
		lines = append(lines, footer)
	}

	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		line := line
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if footer != nil {
		row := strconv.Itoa(len(lines))
		if err := f.SetCellStyle(sheet, "A"+row, lastCol+row, bold); err != nil {
			return fmt.Errorf("style footer: %w", err)
		}
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	return f.Write(w)
}

// sheetName strips the characters Excel refuses in sheet names and keeps it
// within 31 characters.
func sheetName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return -1
		}
		return r
	}, name)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "Income"
	}
	if r := []rune(cleaned); len(r) > 31 {
		cleaned = string(r[:31])
	}
	return cleaned
}

// IncomeCreator records one income; *service.IncomeService satisfies it.
type IncomeCreator interface {
	Create(ctx context.Context, in service.IncomeInput) (*service.IncomeResult, error)
}

type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportResult struct {
	Imported int              `json:"imported"`
	Failed   []ImportRowError `json:"failed"`
}

// ImportIncomes reads "date | income" rows from the first sheet of an xlsx
// workbook, skipping the header row, and records each one for cafeID. Rows
// that cannot be parsed or are rejected are reported and do not stop the
// import; a storage failure does.
func ImportIncomes(ctx context.Context, creator IncomeCreator, cafeID uint, r io.Reader) (*ImportResult, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, inputErr("Failed to parse Excel file")
	}
	defer xl.Close()

	sheets := xl.GetSheetList()
	if len(sheets) == 0 {
		return nil, inputErr("Workbook has no sheets")
	}
	rows, err := xl.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, inputErr("Excel must have at least one row of data")
	}

	log := logger.FromContext(ctx)
	res := &ImportResult{Failed: []ImportRowError{}}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlank(row) {
			continue
		}

		fail := func(msg string) {
			log.Warn().Int("row", rowNum).Str("reason", msg).Msg("income row skipped")
			res.Failed = append(res.Failed, ImportRowError{Row: rowNum, Error: msg})
		}

		if len(row) < 2 {
			fail("incomplete row")
			continue
		}
		date, err := parseCellDate(row[0])
		if err != nil {
			fail(fmt.Sprintf("invalid date %q", row[0]))
			continue
		}
		amount, err := parseCellInt(row[1])
		if err != nil {
			fail(fmt.Sprintf("invalid income %q", row[1]))
			continue
		}

		_, err = creator.Create(ctx, service.IncomeInput{Date: date, CafeID: cafeID, Amount: amount})
		if err != nil {
			var vErr *service.ValidationError
			if errors.As(err, &vErr) {
				fail(vErr.Message)
				continue
			}
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		res.Imported++
	}
	return res, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseCellDate accepts ISO dates as text and Excel serial dates.
func parseCellDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := model.ParseDay(v); err == nil {
		return t, nil
	}
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return time.Time{}, err
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, err
	}
	return model.Day(t), nil
}

func parseCellInt(v string) (int, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("not a whole number: %s", v)
	}
	return int(f), nil
}
