package sketch

import "fmt"

// Severity classifies validation findings.
type Severity int

const (
	SeverityError   Severity = iota // blocking: the sketch is malformed
	SeverityWarning                 // advisory: suspicious but usable
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ValidationError is a blocking finding attached to a named shape.
type ValidationError struct {
	Name     string
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// ValidationWarning is an advisory finding attached to a named shape.
type ValidationWarning struct {
	Name    string
	Message string
}

func (w ValidationWarning) String() string {
	return fmt.Sprintf("%s: %s", w.Name, w.Message)
}
