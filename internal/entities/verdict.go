package entities

import "fmt"

// Verdict is a single reviewer's assessment of one push.
type Verdict string

const (
	// VerdictApprove marks a push as looking safe.
	VerdictApprove Verdict = "approve"
	// VerdictReject flags a push for a closer look.
	VerdictReject Verdict = "reject"
	// VerdictSkip passes on a push without judging it.
	VerdictSkip Verdict = "skip"
)

// Verdicts lists every verdict in form order.
var Verdicts = []Verdict{VerdictApprove, VerdictReject, VerdictSkip}

// Valid reports whether v is a known verdict.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictApprove, VerdictReject, VerdictSkip:
		return true
	}
	return false
}

// ParseVerdict converts a string into a Verdict.
func ParseVerdict(s string) (Verdict, error) {
	v := Verdict(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: unknown verdict %q", ErrInvalidArgument, s)
	}
	return v, nil
}

// VerdictFromFields picks the only verdict whose field is present.
// Zero or several present fields is a malformed submission.
func VerdictFromFields(present func(field string) bool) (Verdict, error) {
	var found []Verdict
	for _, v := range Verdicts {
		if present(string(v)) {
			found = append(found, v)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return "", fmt.Errorf("%w: one of approve, reject or skip is required", ErrInvalidArgument)
	default:
		return "", fmt.Errorf("%w: only one verdict may be submitted, got %v", ErrInvalidArgument, found)
	}
}
