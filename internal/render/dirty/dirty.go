// Package dirty tracks which logical lines need repainting, as a sorted
// set of merged closed intervals over line indices.
package dirty

import (
	"iter"
	"sort"
)

// Span is a closed interval [Start, End] of logical line indices.
type Span struct {
	Start int
	End   int
}

// Contains reports whether line lies within the span.
func (s Span) Contains(line int) bool {
	return line >= s.Start && line <= s.End
}

// LineSet is a merging set of dirty line intervals. Spans are kept
// sorted by start, disjoint, and never adjacent: marking a line next to
// an existing span extends that span instead of adding a second one.
//
// A single mark touches O(1) spans in the typical case; the worst case
// (one mark swallowing every span) is O(N). Membership tests are
// O(log N).
type LineSet struct {
	spans []Span
}

// NewLineSet returns an empty set.
func NewLineSet() *LineSet {
	return &LineSet{}
}

// Mark adds a single line to the set.
func (s *LineSet) Mark(line int) {
	s.MarkSpan(line, line)
}

// MarkRange adds the half-open range [start, end) to the set.
// Empty or reversed ranges are ignored.
func (s *LineSet) MarkRange(start, end int) {
	s.MarkSpan(start, end-1)
}

// MarkSpan adds the closed range [start, end] to the set, merging with
// any existing spans it overlaps or touches. Reversed ranges are
// ignored; they denote an empty range, not an error.
func (s *LineSet) MarkSpan(start, end int) {
	if start < 0 {
		start = 0
	}
	// Reversed after clamping covers fully negative input too.
	if start > end {
		return
	}

	// A span ending at start-1 is adjacent and must merge too.
	searchStart := start
	if searchStart > 0 {
		searchStart--
	}

	// First span whose end reaches the merge window.
	lo := sort.Search(len(s.spans), func(i int) bool {
		return s.spans[i].End >= searchStart
	})

	merged := Span{Start: start, End: end}
	hi := lo
	for hi < len(s.spans) && s.spans[hi].Start <= end+1 {
		if s.spans[hi].Start < merged.Start {
			merged.Start = s.spans[hi].Start
		}
		if s.spans[hi].End > merged.End {
			merged.End = s.spans[hi].End
		}
		hi++
	}

	if hi == lo {
		s.spans = append(s.spans, Span{})
		copy(s.spans[lo+1:], s.spans[lo:])
		s.spans[lo] = merged
		return
	}
	s.spans[lo] = merged
	s.spans = append(s.spans[:lo+1], s.spans[hi:]...)
}

// IsMarked reports whether line is in the set.
func (s *LineSet) IsMarked(line int) bool {
	i := sort.Search(len(s.spans), func(i int) bool {
		return s.spans[i].End >= line
	})
	return i < len(s.spans) && s.spans[i].Contains(line)
}

// IsEmpty reports whether no lines are marked.
func (s *LineSet) IsEmpty() bool {
	return len(s.spans) == 0
}

// Clear resets the set to empty.
func (s *LineSet) Clear() {
	s.spans = s.spans[:0]
}

// Spans returns a copy of the current spans, for inspection.
func (s *LineSet) Spans() []Span {
	out := make([]Span, len(s.spans))
	copy(out, s.spans)
	return out
}

// Lines yields every line in the half-open query [start, end) paired
// with its dirty status. The sequence is restartable: ranging over it
// again replays it from the beginning. Each step costs O(log N), which
// is fine for the viewport-sized queries callers make.
func (s *LineSet) Lines(start, end int) iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		for line := start; line < end; line++ {
			if !yield(line, s.IsMarked(line)) {
				return
			}
		}
	}
}

// DirtySpans yields the marked spans intersecting the half-open query
// [start, end), each clipped to the query bounds. Work is
// O(log N + K) for K intersecting spans.
func (s *LineSet) DirtySpans(start, end int) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		if start >= end {
			return
		}
		// Skip spans ending before the query.
		i := sort.Search(len(s.spans), func(i int) bool {
			return s.spans[i].End >= start
		})
		for ; i < len(s.spans); i++ {
			sp := s.spans[i]
			if sp.Start >= end {
				return
			}
			clipped := Span{Start: max(sp.Start, start), End: min(sp.End, end-1)}
			if clipped.Start > clipped.End {
				continue
			}
			if !yield(clipped) {
				return
			}
		}
	}
}
