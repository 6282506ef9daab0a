package checks

import (
	"fmt"
	"strings"
)

// ChecksumError reports inconsistent checksums found during a copy or
// repair: a source/destination mismatch, or replicas of one object that
// disagree among themselves.
type ChecksumError struct {
	Message string
	// Path is the offending item.
	Path string
	// Expected is the checksum value that was required, when there is one.
	Expected string
	// Observed holds the value(s) actually found.
	Observed []string
}

func (e *ChecksumError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Message, e.Path)
	if e.Expected != "" {
		fmt.Fprintf(&b, " expected %s", e.Expected)
	}
	if len(e.Observed) > 0 {
		fmt.Fprintf(&b, " observed %s", strings.Join(e.Observed, ", "))
	}
	return b.String()
}
