package slip

import (
	"exam-clearance/internal/domain"
)

// Coordinates are PDF points on an A4 page with a 50pt margin.
const (
	marginLeft   = 50.0
	contentWidth = 495.0
	infoTop      = 110.0
	tableTop     = 200.0
	lineHeight   = 15.0
)

// Part identifies the block of the slip an element belongs to.
type Part int

const (
	PartHeader Part = iota
	PartInfo
	PartTableHeader
	PartCourse
	PartFooter
)

// Element is one positioned piece of text.
type Element struct {
	Part  Part
	Row   int // index into the rows for PartCourse, -1 otherwise
	X, Y  float64
	Width float64
	Align string // "L" or "C"
	Bold  bool
	Size  float64
	Text  string
}

type column struct {
	x, width float64
}

var columns = [4]column{{50, 100}, {150, 200}, {350, 100}, {450, 95}}

// Layout places every piece of text of the slip. rows must not be empty;
// the info block is taken from the first row.
func Layout(t Template, rows []domain.ExamEntry) []Element {
	t = t.withDefaults()
	first := rows[0]

	els := []Element{
		{Part: PartHeader, Row: -1, X: marginLeft, Y: 50, Width: contentWidth, Align: "C", Bold: true, Size: 18, Text: t.Institution},
		{Part: PartHeader, Row: -1, X: marginLeft, Y: 75, Width: contentWidth, Align: "C", Bold: true, Size: 14, Text: t.Title},
	}

	info := []string{
		"ID No.: " + first.RollNo,
		"Semester: " + t.Term,
		"Student Name: " + first.FullName,
		"Enrolled Semester: " + first.Semester,
		"Program Name: " + t.ProgramPrefix + " " + first.Department,
	}
	for i, text := range info {
		els = append(els, Element{
			Part: PartInfo, Row: -1, X: marginLeft, Y: infoTop + float64(i)*lineHeight,
			Width: contentWidth, Align: "L", Size: 11, Text: text,
		})
	}

	for i, text := range []string{"Course Code", "Course Title", "Section", "Remarks"} {
		els = append(els, Element{
			Part: PartTableHeader, Row: -1, X: columns[i].x, Y: tableTop,
			Width: columns[i].width, Align: "L", Bold: true, Size: 11, Text: text,
		})
	}

	y := tableTop + 20
	for r, row := range rows {
		for i, text := range []string{row.Code, row.Title, t.Section, t.Remarks} {
			els = append(els, Element{
				Part: PartCourse, Row: r, X: columns[i].x, Y: y,
				Width: columns[i].width, Align: "L", Size: 11, Text: text,
			})
		}
		y += lineHeight
	}

	footerY := y + 40
	els = append(els,
		Element{Part: PartFooter, Row: -1, X: marginLeft, Y: footerY, Width: contentWidth, Align: "L", Size: 11, Text: t.Validity},
		Element{Part: PartFooter, Row: -1, X: marginLeft, Y: footerY + 30, Width: contentWidth, Align: "L", Size: 11, Text: t.Signatory},
		Element{Part: PartFooter, Row: -1, X: marginLeft, Y: footerY + 50, Width: contentWidth, Align: "L", Size: 9, Text: t.Address},
	)
	return els
}
