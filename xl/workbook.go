package xl

import (
	"fmt"
	"strconv"
	"strings"
)

// sheetRecord is a worksheet part that has been written and must be listed
// in the workbook part.
type sheetRecord struct {
	name    string
	id      int    // 1-based sheetId
	rid     string // workbook relationship id
	relpath string // part path relative to xl/
}

// workbook collects the sheets of one write in visitation order.
type workbook struct {
	sheets []sheetRecord
}

func (wb *workbook) addSheet(name, rid string) sheetRecord {
	id := len(wb.sheets) + 1
	rec := sheetRecord{
		name:    name,
		id:      id,
		rid:     rid,
		relpath: "worksheets/sheet" + strconv.Itoa(id) + ".xml",
	}
	wb.sheets = append(wb.sheets, rec)
	return rec
}

// validate checks workbook-wide rules once every sheet is known. Sheet names
// are compared the way Excel compares them, ignoring case, and every group
// of clashing names is reported.
func (wb *workbook) validate() error {
	if len(wb.sheets) == 0 {
		return ErrNoSheets
	}
	groups := map[string][]string{}
	var order []string
	for _, sh := range wb.sheets {
		k := strings.ToUpper(sh.name)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], sh.name)
	}
	var dups []string
	for _, k := range order {
		if names := groups[k]; len(names) > 1 {
			dups = append(dups, strings.Join(quoteAll(names), ", "))
		}
	}
	if len(dups) > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateSheetName, strings.Join(dups, "; "))
	}
	return nil
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strconv.Quote(s)
	}
	return out
}
