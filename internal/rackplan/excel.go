package rackplan

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// maxHeaderRows is how deep the header search goes.
const maxHeaderRows = 10

// LoadExcel reads a rack plan spreadsheet from path.
func LoadExcel(path string, r Range) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening rack plan")
	}
	defer f.Close()
	return ParseExcel(f, r)
}

// ParseExcel reads the active sheet, finds the rack column by its header and
// keeps the codes that fall inside r.
func ParseExcel(reader io.Reader, r Range) (*Plan, error) {
	excelFile, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, errors.Wrap(err, "error opening Excel file")
	}
	defer excelFile.Close()

	sheet := excelFile.GetSheetName(excelFile.GetActiveSheetIndex())
	rows, err := excelFile.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %s", sheet)
	}

	headerRow, rackCol, ok := detectRackColumn(rows)
	if !ok {
		return nil, errors.Wrapf(ErrNoRackColumn, "sheet %s", sheet)
	}

	var codes []string
	for _, row := range rows[headerRow+1:] {
		if rackCol >= len(row) {
			continue
		}
		code := strings.TrimSpace(row[rackCol])
		if code == "" {
			continue
		}
		if r.Contains(code) {
			codes = append(codes, code)
		}
	}

	plan := NewPlan(codes)
	if plan.Len() == 0 {
		return nil, errors.Wrapf(ErrEmptyPlan, "range %s", r)
	}

	zap.S().Named("rackplan").Infof("loaded %d racks from sheet %s", plan.Len(), sheet)
	return plan, nil
}

// LoadOrDefault loads the spreadsheet and falls back to the generated plan
// when the file is missing or unusable.
func LoadOrDefault(path string, r Range) *Plan {
	if path == "" {
		zap.S().Named("rackplan").Infof("no rack plan file configured, using default range %s", r)
		return DefaultPlan(r)
	}
	plan, err := LoadExcel(path, r)
	if err != nil {
		zap.S().Named("rackplan").Warnf("failed to load rack plan from %s: %v", path, err)
		zap.S().Named("rackplan").Warnf("using default range %s", r)
		return DefaultPlan(r)
	}
	return plan
}

// detectRackColumn returns the row and column of the first header cell that
// mentions "rack" within the first maxHeaderRows rows.
func detectRackColumn(rows [][]string) (int, int, bool) {
	for i, row := range rows {
		if i >= maxHeaderRows {
			break
		}
		for j, cell := range row {
			value := strings.ToLower(strings.TrimSpace(cell))
			if value != "" && strings.Contains(value, "rack") {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}
