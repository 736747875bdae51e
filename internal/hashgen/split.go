package hashgen

// Span is the half-open index range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the number of indexes in the span.
func (s Span) Len() int { return s.End - s.Start }

// SplitRange divides [0, n) into 'parts' contiguous spans of ceil(n/parts)
// indexes each. Spans past n are truncated, so trailing spans may be shorter
// or empty. Returns nil when parts is not positive.
func SplitRange(n, parts int) []Span {
	if parts <= 0 {
		return nil
	}
	size := (n + parts - 1) / parts

	spans := make([]Span, parts)
	for i := range spans {
		// truncate to n; this gives the last spans the remainder
		spans[i].Start = min(i*size, n)
		spans[i].End = min(spans[i].Start+size, n)
	}
	return spans
}
