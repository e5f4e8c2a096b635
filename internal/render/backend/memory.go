package backend

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Memory is an in-memory Backend for tests. It records cell contents
// and styles and lets tests inject input events.
type Memory struct {
	width, height int
	cells         [][]rune
	styles        [][]Style

	CursorX, CursorY int
	CursorHidden     bool
	ShowCount        int

	events chan Event
}

// NewMemory returns a memory backend of the given size.
func NewMemory(width, height int) *Memory {
	m := &Memory{
		width:  width,
		height: height,
		events: make(chan Event, 32),
	}
	m.reset()
	return m
}

func (m *Memory) reset() {
	m.cells = make([][]rune, m.height)
	m.styles = make([][]Style, m.height)
	for y := range m.cells {
		m.cells[y] = make([]rune, m.width)
		m.styles[y] = make([]Style, m.width)
		for x := range m.cells[y] {
			m.cells[y][x] = ' '
		}
	}
}

func (m *Memory) Init() error { return nil }

func (m *Memory) Fini() { close(m.events) }

func (m *Memory) Size() (int, int) { return m.width, m.height }

func (m *Memory) Print(x, y int, text string, style Style) int {
	advance := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w <= 0 {
			continue
		}
		cx := x + advance
		if y >= 0 && y < m.height && cx >= 0 && cx < m.width {
			m.cells[y][cx] = r
			m.styles[y][cx] = style
			// Wide runes blank their second cell.
			for i := 1; i < w && cx+i < m.width; i++ {
				m.cells[y][cx+i] = 0
				m.styles[y][cx+i] = style
			}
		}
		advance += w
	}
	return advance
}

func (m *Memory) ClearLine(y int) {
	if y < 0 || y >= m.height {
		return
	}
	for x := range m.cells[y] {
		m.cells[y][x] = ' '
		m.styles[y][x] = StyleDefault
	}
}

func (m *Memory) ShowCursor(x, y int) {
	m.CursorX, m.CursorY = x, y
	m.CursorHidden = false
}

func (m *Memory) HideCursor() { m.CursorHidden = true }

func (m *Memory) Show() { m.ShowCount++ }

func (m *Memory) Events() <-chan Event { return m.events }

// Inject queues an input event for the reader.
func (m *Memory) Inject(ev Event) { m.events <- ev }

// Row returns the text content of screen row y with trailing blanks
// trimmed. Cells shadowed by a wide rune are skipped.
func (m *Memory) Row(y int) string {
	if y < 0 || y >= m.height {
		return ""
	}
	var b strings.Builder
	for _, r := range m.cells[y] {
		if r == 0 {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

// StyleAt returns the style of the cell at (x, y).
func (m *Memory) StyleAt(x, y int) Style {
	if y < 0 || y >= m.height || x < 0 || x >= m.width {
		return StyleDefault
	}
	return m.styles[y][x]
}
