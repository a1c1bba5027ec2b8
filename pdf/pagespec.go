package pdf

import (
	"strconv"
	"strings"
)

// TokenWarning describes a page specification token that was skipped.
type TokenWarning struct {
	Token  string
	Reason string
}

func (w TokenWarning) String() string {
	return w.Reason + ": " + strconv.Quote(w.Token)
}

// ResolvePages converts a page specification into zero-based page indices.
// Supports formats: "1", "2,1", "3-10", "10-1", "1-3, 7, 10".
//
// Tokens are expanded left to right and the order is kept, so the result
// may contain duplicates. Pages outside [0, pageCount) are dropped. Tokens
// that cannot be parsed are skipped and reported as warnings; they never
// fail the whole specification.
func ResolvePages(spec string, pageCount int) ([]int, []TokenWarning) {
	var indices []int
	var warnings []TokenWarning

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)

		switch strings.Count(part, "-") {
		case 0:
			page, ok := parsePageNumber(part)
			if !ok {
				warnings = append(warnings, TokenWarning{Token: part, Reason: "non-numeric page not allowed"})
				continue
			}
			if page >= 0 && page < pageCount {
				indices = append(indices, page)
			}
		case 1:
			bounds := strings.SplitN(part, "-", 2)
			start, okStart := parsePageNumber(bounds[0])
			end, okEnd := parsePageNumber(bounds[1])
			if !okStart || !okEnd {
				warnings = append(warnings, TokenWarning{Token: part, Reason: "non-numeric page not allowed in range"})
				continue
			}
			indices = appendRange(indices, start, end, pageCount)
		default:
			warnings = append(warnings, TokenWarning{Token: part, Reason: "more than one dash not allowed in page range"})
		}
	}

	return indices, warnings
}

// parsePageNumber converts a 1-based page number into a zero-based index.
// Only plain ASCII digits are accepted.
func parsePageNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// overflows int
		return 0, false
	}
	return n - 1, true
}

// appendRange expands an inclusive range in its own direction, keeping
// only indices in [0, pageCount). The bounds are clamped first so huge
// ranges do not iterate over pages that can never exist.
func appendRange(indices []int, start, end, pageCount int) []int {
	if pageCount <= 0 {
		return indices
	}
	last := pageCount - 1

	if start <= end {
		if end < 0 || start > last {
			return indices
		}
		for i := max(start, 0); i <= min(end, last); i++ {
			indices = append(indices, i)
		}
		return indices
	}

	if start < 0 || end > last {
		return indices
	}
	for i := min(start, last); i >= max(end, 0); i-- {
		indices = append(indices, i)
	}
	return indices
}
