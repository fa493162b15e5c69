// Package race defines the normalized race record extracted from the dirt-grade
// schedule page.
//
// A Race carries the display grade, the date, the race name and the venue. Grades
// come from a fixed classification table keyed by the CSS class used on the
// schedule page. The package also defines the error taxonomy shared by the
// extractor: every failure is one of a small set of sentinel errors so callers can
// tell a changed page layout from an I/O problem.
package race
