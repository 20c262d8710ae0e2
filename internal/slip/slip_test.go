package slip

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"exam-clearance/internal/domain"
)

func sampleRows() []domain.ExamEntry {
	base := domain.ExamEntry{FullName: "Alice Rahman", RollNo: "R-001", Department: "Computer Science", Semester: "6"}
	rows := []domain.ExamEntry{base, base, base}
	rows[0].Code, rows[0].Title = "CSE-101", "Structured Programming"
	rows[1].Code, rows[1].Title = "MAT-201", "Linear Algebra"
	rows[2].Code, rows[2].Title = "PHY-110", "Mechanics"
	return rows
}

func TestLayoutOneCourseRowPerEntryInOrder(t *testing.T) {
	rows := sampleRows()
	els := Layout(DefaultTemplate(), rows)

	var codes []string
	var lastY float64
	for _, el := range els {
		if el.Part != PartCourse || el.X != columns[0].x {
			continue
		}
		if el.Y <= lastY {
			t.Fatalf("course rows must move down the page")
		}
		lastY = el.Y
		codes = append(codes, el.Text)
	}
	if len(codes) != len(rows) {
		t.Fatalf("expected %d course rows, got %d", len(rows), len(codes))
	}
	for i := range rows {
		if codes[i] != rows[i].Code {
			t.Fatalf("row %d: expected %s, got %s", i, rows[i].Code, codes[i])
		}
	}
}

func TestLayoutDefaultsMatchLegacySlip(t *testing.T) {
	els := Layout(Template{}, sampleRows()[:1])

	want := map[string]bool{}
	for _, text := range []string{
		"Northern University Bangladesh",
		"Clearance for Assessment",
		"ID No.: R-001",
		"Semester: Fall 2023",
		"Student Name: Alice Rahman",
		"Enrolled Semester: 6",
		"Program Name: Bachelor of Science in Computer Science",
		"K",
		"C",
		"Valid for Final Assessment, Fall 2023",
		"Controller of Examinations",
	} {
		want[text] = false
	}
	for _, el := range els {
		if _, ok := want[el.Text]; ok {
			want[el.Text] = true
		}
	}
	for text, seen := range want {
		if !seen {
			t.Errorf("missing %q", text)
		}
	}
}

func TestLayoutUsesTemplateFields(t *testing.T) {
	tmpl := DefaultTemplate()
	tmpl.Term = "Spring 2024"
	tmpl.Section = "A"
	tmpl.Remarks = "OK"

	var term, section, remarks bool
	for _, el := range Layout(tmpl, sampleRows()) {
		switch {
		case el.Part == PartInfo && el.Text == "Semester: Spring 2024":
			term = true
		case el.Part == PartCourse && el.X == columns[2].x && el.Text == "A":
			section = true
		case el.Part == PartCourse && el.X == columns[3].x && el.Text == "OK":
			remarks = true
		}
	}
	if !term || !section || !remarks {
		t.Fatalf("template fields not applied: term=%v section=%v remarks=%v", term, section, remarks)
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r, err := NewRenderer(DefaultTemplate())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	r.compress = false

	var buf bytes.Buffer
	if err := r.Render(&buf, sampleRows()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}

	prev := -1
	for _, code := range []string{"(CSE-101)", "(MAT-201)", "(PHY-110)"} {
		idx := bytes.Index(out, []byte(code))
		if idx < 0 {
			t.Fatalf("missing %s in content stream", code)
		}
		if idx < prev {
			t.Fatalf("%s drawn out of order", code)
		}
		prev = idx
	}
}

func TestRenderRejectsEmptyRows(t *testing.T) {
	r, err := NewRenderer(DefaultTemplate())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	if err := r.Render(&bytes.Buffer{}, nil); !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestRenderWithLogo(t *testing.T) {
	var logo bytes.Buffer
	if err := png.Encode(&logo, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	tmpl := DefaultTemplate()
	tmpl.Logo = logo.Bytes()

	r, err := NewRenderer(tmpl)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, sampleRows()); err != nil {
		t.Fatalf("render with logo: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("/Subtype /Image")) {
		t.Fatalf("expected an image object in the pdf")
	}
}

func TestNewRendererRejectsUnknownLogo(t *testing.T) {
	tmpl := DefaultTemplate()
	tmpl.Logo = []byte("GIF89a not really")
	if _, err := NewRenderer(tmpl); err == nil {
		t.Fatalf("expected unsupported logo to fail")
	}
}
