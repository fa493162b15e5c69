package race

import "fmt"

// Grade is the display label of a race's classification, e.g. "JpnⅢ".
type Grade string

const (
	GradeJpn1 Grade = "JpnⅠ"
	GradeJpn2 Grade = "JpnⅡ"
	GradeJpn3 Grade = "JpnⅢ"
	GradeG1   Grade = "GⅠ"
	GradeG2   Grade = "GⅡ"
	GradeG3   Grade = "GⅢ"
)

// gradeTable maps the schedule page's class token to a display grade.
// jpn1Central and g1Local are the same tier run by a different administration,
// so they share a label with jpn1 and g1.
var gradeTable = map[string]Grade{
	"jpn1":        GradeJpn1,
	"jpn2":        GradeJpn2,
	"jpn3":        GradeJpn3,
	"g1":          GradeG1,
	"g2":          GradeG2,
	"g3":          GradeG3,
	"jpn1Central": GradeJpn1,
	"g1Local":     GradeG1,
}

// LookupGrade returns the display grade for a class token.
func LookupGrade(code string) (Grade, error) {
	g, ok := gradeTable[code]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownGrade, code)
	}
	return g, nil
}

// GradeCodes returns every class token recognized by LookupGrade.
func GradeCodes() []string {
	codes := make([]string, 0, len(gradeTable))
	for code := range gradeTable {
		codes = append(codes, code)
	}
	return codes
}
