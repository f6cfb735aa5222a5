package model

import "fmt"

// Status is the application lifecycle value of a job.
//
//	Not Applied ──► Applied ──► Selected
//	                   │
//	                   └──────► Rejected
//
// Any status may be set from any other; the graph above is the usual path.
type Status string

const (
	StatusNotApplied Status = "Not Applied"
	StatusApplied    Status = "Applied"
	StatusRejected   Status = "Rejected"
	StatusSelected   Status = "Selected"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNotApplied, StatusApplied, StatusRejected, StatusSelected}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values. Matching is exact.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusNotApplied, StatusApplied, StatusRejected, StatusSelected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsDefault reports whether s is the implicit status of an untouched job.
// Setting a job back to the default is not recorded in the change log.
func IsDefault(s Status) bool { return s == StatusNotApplied }
