// Package app wires the editor together: document, command engine,
// layout, viewport, renderer, keymap, and the terminal event loop.
package app

import (
	"fmt"
	"os"

	"github.com/quilltext/quill/internal/config"
	"github.com/quilltext/quill/internal/engine/command"
	"github.com/quilltext/quill/internal/engine/cursor"
	"github.com/quilltext/quill/internal/input/keymap"
	"github.com/quilltext/quill/internal/render"
	"github.com/quilltext/quill/internal/render/backend"
	"github.com/quilltext/quill/internal/render/layout"
	"github.com/quilltext/quill/internal/render/viewport"
	"github.com/quilltext/quill/internal/textbuf"
)

// Options configures a new editor.
type Options struct {
	// FilePath is the file to edit; empty starts an unnamed buffer.
	FilePath string
	// ConfigPath overrides the default config file location.
	ConfigPath string
	// Clipboard overrides the system clipboard, for tests.
	Clipboard command.Clipboard
	// Logger receives diagnostics; nil discards them.
	Logger *Logger
}

// Editor is the running application.
type Editor struct {
	doc  *textbuf.Buffer
	cur  *cursor.Cursor
	lay  *layout.Cache
	eng  *command.Engine
	vp   *viewport.Controller
	ren  *render.Renderer
	be   backend.Backend
	keys *keymap.Keymap

	watcher    *config.Watcher
	configPath string
	filePath   string
	log        *Logger

	// dirty is set when something visible changed since the last
	// frame.
	dirty bool
}

// New builds an editor over the given backend. The backend is not
// initialized yet; Run does that.
func New(be backend.Backend, opts Options) (*Editor, error) {
	log := opts.Logger
	if log == nil {
		log = NewLogger(LogLevelInfo, nil)
	}

	doc := textbuf.New()
	if opts.FilePath != "" {
		data, err := os.ReadFile(opts.FilePath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("opening %s: %w", opts.FilePath, err)
		}
		doc = textbuf.FromString(string(data))
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = command.SystemClipboard{}
	}

	cur := cursor.New()
	lay := layout.NewCache(0)

	e := &Editor{
		doc:      doc,
		cur:      cur,
		lay:      lay,
		eng:      command.New(doc, cur, lay, clip),
		vp:       viewport.New(0),
		ren:      render.New(be),
		be:       be,
		keys:     keymap.Default(),
		filePath: opts.FilePath,
		log:      log.WithComponent("app"),
	}

	if err := e.setupConfig(opts.ConfigPath); err != nil {
		return nil, err
	}
	return e, nil
}

// setupConfig loads user bindings and starts the live-reload watcher.
// A missing or broken config never prevents startup.
func (e *Editor) setupConfig(path string) error {
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			e.log.Warnf("no config dir: %v", err)
			return nil
		}
	}
	e.configPath = path
	e.applyConfig()

	w, err := config.Watch(path)
	if err != nil {
		e.log.Warnf("config watch %s: %v", path, err)
		return nil
	}
	e.watcher = w
	return nil
}

// applyConfig merges the config file's bindings over the defaults.
func (e *Editor) applyConfig() {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		e.log.Warnf("config: %v", err)
		return
	}
	keys := keymap.Default()
	for _, mergeErr := range keys.Merge(cfg.Bindings) {
		e.log.Warnf("config %s: %v", e.configPath, mergeErr)
	}
	e.keys = keys
}

// Run initializes the terminal, runs the event loop until exit, and
// writes the buffer back to its file.
func (e *Editor) Run() error {
	if err := e.be.Init(); err != nil {
		return err
	}
	defer e.be.Fini()
	if e.watcher != nil {
		defer e.watcher.Close()
	}

	w, h := e.be.Size()
	e.lay.SetWidth(render.ContentWidth(w))
	e.lay.Rebuild(e.doc)
	e.vp.SetHeight(render.ContentHeight(h))
	e.dirty = true

	if err := e.loop(); err != nil {
		return err
	}
	return e.saveFile()
}

func (e *Editor) loop() error {
	for {
		if e.eng.ShouldQuit() {
			return nil
		}
		if e.vp.ScrollToCursor(e.doc, e.lay, e.cur.Pos()) {
			e.ren.RequestFull()
			e.dirty = true
		}
		if e.dirty {
			e.ren.Draw(e.frame())
			e.dirty = false
		}

		select {
		case ev, ok := <-e.be.Events():
			if !ok {
				return nil
			}
			e.handleEvent(ev)
			e.drainEvents()
		case <-e.configChanges():
			e.log.Infof("config changed, reloading %s", e.configPath)
			e.applyConfig()
		}
	}
}

// drainEvents handles whatever else is already queued, so a paste or
// key repeat burst becomes a single frame.
func (e *Editor) drainEvents() {
	for {
		select {
		case ev, ok := <-e.be.Events():
			if !ok {
				return
			}
			e.handleEvent(ev)
		default:
			return
		}
	}
}

// configChanges returns the watcher channel, or a nil channel that
// never fires when watching is off.
func (e *Editor) configChanges() <-chan struct{} {
	if e.watcher == nil {
		return nil
	}
	return e.watcher.Changes()
}

func (e *Editor) frame() render.Frame {
	f := render.Frame{
		Doc:    e.doc,
		Layout: e.lay,
		Scroll: e.vp.Scroll(),
		Cursor: e.cur.Pos(),
	}
	f.SelStart, f.SelEnd, f.HasSel = e.cur.Selection()
	return f
}

// saveFile writes the buffer back to the opened file.
func (e *Editor) saveFile() error {
	if e.filePath == "" {
		return nil
	}
	if err := os.WriteFile(e.filePath, []byte(e.doc.String()), 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", e.filePath, err)
	}
	return nil
}
