package ledger

import (
	"github.com/xuri/excelize/v2"

	"resume-ledger/internal/record"
)

// SheetName is the single worksheet holding the applicant ledger.
const SheetName = "지원자 데이터"

const (
	maxColumnWidth = 30
	columnPadding  = 2
)

// basicColumns is the fixed layout of the per-applicant columns A–I.
var basicColumns = []struct {
	Col   string
	Label string
}{
	{"A", "지원자 번호"},
	{"B", "지원자명"},
	{"C", "지원일"},
	{"D", "소속"},
	{"E", "지원분야/공고"},
	{"F", "출생년도"},
	{"G", "성별"},
	{"H", "최종학력(학교)"},
	{"I", "최종학력(학사 등)"},
}

// workBlockStarts are the first columns of the five 6-column work
// experience blocks: J–O, P–U, V–AA, AB–AG, AH–AM.
var workBlockStarts = [record.MaxWorkEntries]string{"J", "P", "V", "AB", "AH"}

// workBlockLabels name the one-based blocks in the header row.
var workBlockLabels = [record.MaxWorkEntries]string{"경력 1", "경력 2", "경력 3", "경력 4", "경력 5"}

// workFieldLabels are the sub-column headers inside each block, in
// column order.
var workFieldLabels = []string{"입사년월", "퇴사년월", "회사명", "최종부서명", "최종직위", "연봉(천원)"}

// workColumn returns the column letter for a field offset inside a work
// block.
func workColumn(block, offset int) string {
	base, err := excelize.ColumnNameToNumber(workBlockStarts[block])
	if err != nil {
		return ""
	}
	name, err := excelize.ColumnNumberToName(base + offset)
	if err != nil {
		return ""
	}
	return name
}

// lastColumn is the rightmost column of the layout (AM).
func lastColumn() string {
	return workColumn(record.MaxWorkEntries-1, len(workFieldLabels)-1)
}

type headerCell struct {
	Col   string
	Label string
}

// headerCells returns the full header row in column order.
func headerCells() []headerCell {
	cells := make([]headerCell, 0, len(basicColumns)+record.MaxWorkEntries*len(workFieldLabels))
	for _, c := range basicColumns {
		cells = append(cells, headerCell{Col: c.Col, Label: c.Label})
	}
	for block := 0; block < record.MaxWorkEntries; block++ {
		for offset, field := range workFieldLabels {
			cells = append(cells, headerCell{
				Col:   workColumn(block, offset),
				Label: workBlockLabels[block] + " " + field,
			})
		}
	}
	return cells
}
