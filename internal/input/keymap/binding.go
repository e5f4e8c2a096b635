package keymap

import (
	"fmt"

	"github.com/quilltext/quill/internal/engine/command"
	"github.com/quilltext/quill/internal/input/key"
)

// Binding is one user-configured key binding as it appears in the
// configuration file.
type Binding struct {
	Keys    string `toml:"keys"`
	Command string `toml:"command"`
}

// Merge applies user bindings over the existing map. Bindings that
// fail to parse are skipped and reported, so one bad line does not
// discard the rest of the file.
func (m *Keymap) Merge(bindings []Binding) []error {
	var errs []error
	for i, b := range bindings {
		ev, err := key.Parse(b.Keys)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %d (%q): %w", i, b.Keys, err))
			continue
		}
		op, err := command.ParseOp(b.Command)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %d (%q): %w", i, b.Keys, err))
			continue
		}
		m.Bind(ev, command.Command{Op: op})
	}
	return errs
}
