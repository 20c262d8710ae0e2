// Package slip renders the exam clearance slip.
package slip

// Template holds the institution-specific text printed on every slip.
// Defaults reproduce the Fall 2023 slip of Northern University Bangladesh.
type Template struct {
	Institution   string
	Title         string
	Term          string
	Section       string
	Remarks       string
	ProgramPrefix string
	Validity      string
	Signatory     string
	Address       string

	// Logo is an optional PNG or JPEG drawn in the top-left corner.
	Logo []byte
}

func DefaultTemplate() Template {
	return Template{
		Institution:   "Northern University Bangladesh",
		Title:         "Clearance for Assessment",
		Term:          "Fall 2023",
		Section:       "K",
		Remarks:       "C",
		ProgramPrefix: "Bachelor of Science in",
		Validity:      "Valid for Final Assessment, Fall 2023",
		Signatory:     "Controller of Examinations",
		Address:       "111/2 Kawlar Jame Mosjid Road, Ashkona, (Near Haj Camp) Dakshinkhan, Dhaka-1230",
	}
}

// withDefaults fills empty text fields from DefaultTemplate.
func (t Template) withDefaults() Template {
	d := DefaultTemplate()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&t.Institution, d.Institution)
	fill(&t.Title, d.Title)
	fill(&t.Term, d.Term)
	fill(&t.Section, d.Section)
	fill(&t.Remarks, d.Remarks)
	fill(&t.ProgramPrefix, d.ProgramPrefix)
	fill(&t.Validity, d.Validity)
	fill(&t.Signatory, d.Signatory)
	fill(&t.Address, d.Address)
	return t
}
