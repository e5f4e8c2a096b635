package dirty

import (
	"math/rand"
	"slices"
	"testing"
)

func spansOf(s *LineSet) []Span {
	return s.Spans()
}

func TestMarkSingleLines(t *testing.T) {
	s := NewLineSet()

	s.Mark(5)
	s.Mark(10)

	want := []Span{{5, 5}, {10, 10}}
	if got := spansOf(s); !slices.Equal(got, want) {
		t.Fatalf("spans = %v, want %v", got, want)
	}

	// Adjacent line merges.
	s.Mark(6)
	want = []Span{{5, 6}, {10, 10}}
	if got := spansOf(s); !slices.Equal(got, want) {
		t.Fatalf("after Mark(6): spans = %v, want %v", got, want)
	}

	if !s.IsMarked(6) {
		t.Error("IsMarked(6) = false, want true")
	}
	if s.IsMarked(7) {
		t.Error("IsMarked(7) = true, want false")
	}
}

func TestMarkRangeHalfOpen(t *testing.T) {
	s := NewLineSet()

	s.MarkRange(5, 8)

	want := []Span{{5, 7}}
	if got := spansOf(s); !slices.Equal(got, want) {
		t.Fatalf("spans = %v, want %v", got, want)
	}

	// Empty range is a no-op.
	s.MarkRange(10, 10)
	if got := spansOf(s); !slices.Equal(got, want) {
		t.Fatalf("after empty range: spans = %v, want %v", got, want)
	}
}

func TestMarkReversedSpanIgnored(t *testing.T) {
	s := NewLineSet()

	s.MarkSpan(10, 9)

	if !s.IsEmpty() {
		t.Errorf("spans = %v, want empty", spansOf(s))
	}

	// A fully negative range clamps to reversed and is ignored too.
	s.MarkSpan(-2, -1)
	if !s.IsEmpty() {
		t.Errorf("after negative range: spans = %v, want empty", spansOf(s))
	}

	s.Mark(0)
	want := []Span{{0, 0}}
	if got := spansOf(s); !slices.Equal(got, want) {
		t.Fatalf("after Mark(0): spans = %v, want %v", got, want)
	}
	s.MarkRange(-3, -1)
	if got := spansOf(s); !slices.Equal(got, want) {
		t.Fatalf("after negative MarkRange: spans = %v, want %v", got, want)
	}
}

func TestMergingAcrossSpans(t *testing.T) {
	s := NewLineSet()
	s.MarkRange(10, 15) // [10, 14]
	s.MarkRange(30, 35) // [30, 34]
	s.Mark(50)

	want := []Span{{10, 14}, {30, 34}, {50, 50}}
	if got := spansOf(s); !slices.Equal(got, want) {
		t.Fatalf("spans = %v, want %v", got, want)
	}

	// Bridge the first two.
	s.MarkSpan(13, 31)
	want = []Span{{10, 34}, {50, 50}}
	if got := spansOf(s); !slices.Equal(got, want) {
		t.Fatalf("after bridge: spans = %v, want %v", got, want)
	}

	// Adjacent extension.
	s.MarkRange(34, 36) // [34, 35]
	want = []Span{{10, 35}, {50, 50}}
	if got := spansOf(s); !slices.Equal(got, want) {
		t.Fatalf("after extension: spans = %v, want %v", got, want)
	}

	// Swallow everything.
	s.MarkRange(5, 55)
	want = []Span{{5, 54}}
	if got := spansOf(s); !slices.Equal(got, want) {
		t.Fatalf("after swallow: spans = %v, want %v", got, want)
	}
}

func TestIsMarkedBoundaries(t *testing.T) {
	s := NewLineSet()
	s.MarkSpan(10, 19)
	s.Mark(30)

	for _, line := range []int{10, 19, 30} {
		if !s.IsMarked(line) {
			t.Errorf("IsMarked(%d) = false, want true", line)
		}
	}
	for _, line := range []int{9, 20, 31} {
		if s.IsMarked(line) {
			t.Errorf("IsMarked(%d) = true, want false", line)
		}
	}
}

func TestLinesIterator(t *testing.T) {
	s := NewLineSet()
	s.MarkRange(5, 8) // [5, 7]
	s.Mark(10)

	var got [][2]int
	for line, marked := range s.Lines(4, 9) {
		m := 0
		if marked {
			m = 1
		}
		got = append(got, [2]int{line, m})
	}

	want := [][2]int{{4, 0}, {5, 1}, {6, 1}, {7, 1}, {8, 0}}
	if !slices.Equal(got, want) {
		t.Fatalf("Lines(4, 9) = %v, want %v", got, want)
	}

	// The sequence must be restartable.
	n := 0
	for range s.Lines(4, 9) {
		n++
	}
	if n != 5 {
		t.Errorf("second pass yielded %d items, want 5", n)
	}
}

func TestDirtySpansClipsToQuery(t *testing.T) {
	s := NewLineSet()
	s.MarkRange(5, 10)  // [5, 9]
	s.MarkRange(15, 20) // [15, 19]

	var got []Span
	for sp := range s.DirtySpans(8, 17) {
		got = append(got, sp)
	}

	want := []Span{{8, 9}, {15, 16}}
	if !slices.Equal(got, want) {
		t.Fatalf("DirtySpans(8, 17) = %v, want %v", got, want)
	}
}

func TestDirtySpansSkipsOutside(t *testing.T) {
	s := NewLineSet()
	s.MarkSpan(0, 2)
	s.MarkSpan(40, 45)

	var got []Span
	for sp := range s.DirtySpans(10, 20) {
		got = append(got, sp)
	}
	if len(got) != 0 {
		t.Errorf("DirtySpans(10, 20) = %v, want none", got)
	}
}

func TestClear(t *testing.T) {
	s := NewLineSet()
	s.MarkSpan(1, 5)

	s.Clear()

	if !s.IsEmpty() {
		t.Error("IsEmpty() = false after Clear")
	}
	if s.IsMarked(3) {
		t.Error("IsMarked(3) = true after Clear")
	}
}

// TestMergeInvariantRandomized checks that any mark sequence leaves the
// spans sorted, disjoint and non-adjacent, and that membership matches a
// naive set.
func TestMergeInvariantRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 100; trial++ {
		s := NewLineSet()
		naive := make(map[int]bool)

		for op := 0; op < 50; op++ {
			start := rng.Intn(200)
			end := start + rng.Intn(10)
			s.MarkSpan(start, end)
			for l := start; l <= end; l++ {
				naive[l] = true
			}
		}

		spans := spansOf(s)
		for i, sp := range spans {
			if sp.Start > sp.End {
				t.Fatalf("trial %d: inverted span %v", trial, sp)
			}
			if i > 0 && spans[i-1].End+1 >= sp.Start {
				t.Fatalf("trial %d: spans %v and %v should have merged",
					trial, spans[i-1], sp)
			}
		}
		for l := 0; l < 220; l++ {
			if s.IsMarked(l) != naive[l] {
				t.Fatalf("trial %d: IsMarked(%d) = %v, want %v",
					trial, l, s.IsMarked(l), naive[l])
			}
		}
	}
}
