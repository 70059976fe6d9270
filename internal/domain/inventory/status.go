package inventory

import "fmt"

// InspectionStatus is the three-valued outcome of a periodic inspection.
type InspectionStatus int

const (
	StatusFailed InspectionStatus = iota
	StatusPassed
	StatusNotApplicable
)

// Valid reports whether the status is one of the three known values.
func (s InspectionStatus) Valid() bool {
	return s >= StatusFailed && s <= StatusNotApplicable
}

// Label returns the human-readable form used in exports and CLI output.
func (s InspectionStatus) Label() string {
	switch s {
	case StatusFailed:
		return "Failed"
	case StatusPassed:
		return "Passed"
	case StatusNotApplicable:
		return "N/A"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}
