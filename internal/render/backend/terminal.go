package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/quilltext/quill/internal/input/key"
)

// Terminal implements Backend on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	events chan Event
	quit   chan struct{}

	// dragging tracks whether button 1 is held, to distinguish drag
	// motion from hover motion.
	dragging bool

	mu sync.Mutex
}

// NewTerminal allocates a terminal backend. Init must be called before
// any drawing.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{
		screen: screen,
		events: make(chan Event, 32),
		quit:   make(chan struct{}),
	}, nil
}

func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()

	raw := make(chan tcell.Event, 32)
	go t.screen.ChannelEvents(raw, t.quit)
	go t.translate(raw)
	return nil
}

func (t *Terminal) Fini() {
	close(t.quit)
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

func (t *Terminal) Print(x, y int, text string, style Style) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := tcell.StyleDefault
	if style == StyleReverse {
		st = st.Reverse(true)
	}
	advance := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w <= 0 {
			continue
		}
		t.screen.SetContent(x+advance, y, r, nil, st)
		advance += w
	}
	return advance
}

func (t *Terminal) ClearLine(y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, _ := t.screen.Size()
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.HideCursor()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *Terminal) Events() <-chan Event { return t.events }

// translate converts tcell events to backend events until the raw
// channel closes.
func (t *Terminal) translate(raw <-chan tcell.Event) {
	defer close(t.events)
	for ev := range raw {
		switch tev := ev.(type) {
		case *tcell.EventKey:
			if kev, ok := convertKey(tev); ok {
				t.events <- Event{Kind: EventKey, Key: kev}
			}
		case *tcell.EventMouse:
			if out, ok := t.convertMouse(tev); ok {
				t.events <- out
			}
		case *tcell.EventResize:
			w, h := tev.Size()
			t.events <- Event{Kind: EventResize, Width: w, Height: h}
		}
	}
}

func (t *Terminal) convertMouse(ev *tcell.EventMouse) (Event, bool) {
	x, y := ev.Position()
	out := Event{Kind: EventMouse, X: x, Y: y}

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		out.Mouse = MouseWheelUp
	case buttons&tcell.WheelDown != 0:
		out.Mouse = MouseWheelDown
	case buttons&tcell.Button1 != 0:
		if t.dragging {
			out.Mouse = MouseDrag
		} else {
			t.dragging = true
			out.Mouse = MousePress
		}
	case t.dragging:
		t.dragging = false
		out.Mouse = MouseRelease
	default:
		return Event{}, false
	}
	return out, true
}

func convertKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMods(ev.Modifiers())

	switch ev.Key() {
	case tcell.KeyRune:
		return key.NewRuneEvent(ev.Rune(), mods), true
	case tcell.KeyEnter:
		return key.NewEvent(key.KeyEnter, mods), true
	case tcell.KeyTab:
		return key.NewEvent(key.KeyTab, mods), true
	case tcell.KeyEsc:
		return key.NewEvent(key.KeyEscape, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewEvent(key.KeyBackspace, mods), true
	case tcell.KeyDelete:
		return key.NewEvent(key.KeyDelete, mods), true
	case tcell.KeyInsert:
		return key.NewEvent(key.KeyInsert, mods), true
	case tcell.KeyHome:
		return key.NewEvent(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.NewEvent(key.KeyEnd, mods), true
	case tcell.KeyPgUp:
		return key.NewEvent(key.KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return key.NewEvent(key.KeyPageDown, mods), true
	case tcell.KeyUp:
		return key.NewEvent(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewEvent(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.NewEvent(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.NewEvent(key.KeyRight, mods), true
	}

	// tcell folds ctrl+letter into dedicated key codes.
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := rune('a' + k - tcell.KeyCtrlA)
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	}
	return key.Event{}, false
}

func convertMods(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
