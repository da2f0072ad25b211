package tle

// Record is a single satellite's three-line element set as served by the
// catalog: the name line followed by the two data lines, tagged with the
// catalog number it was requested under. Records are never mutated after
// construction.
type Record struct {
	Name  string `json:"name"`
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
	CatNr int    `json:"catNr"`
}
