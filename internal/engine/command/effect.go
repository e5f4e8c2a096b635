package command

// EffectKind says what a command did, so the caller knows how much to
// repaint.
type EffectKind uint8

const (
	// EffectNone means nothing changed and nothing needs repainting.
	EffectNone EffectKind = iota
	// EffectCursorDirty means only the cursor moved.
	EffectCursorDirty
	// EffectSelectionFixed means the command set the selection itself,
	// so the caller must not apply its usual shift-extends-selection
	// handling.
	EffectSelectionFixed
	// EffectTextChanged means the document changed in the reported
	// line span.
	EffectTextChanged
)

// Effect reports a command's damage. For EffectTextChanged, the edit
// replaced OldLines logical lines starting at StartLine with NewLines
// lines.
type Effect struct {
	Kind       EffectKind
	StartLine  int
	OldLines   int
	NewLines   int
	FullRedraw bool
}

func textChanged(start, oldLines, newLines int) Effect {
	return Effect{Kind: EffectTextChanged, StartLine: start, OldLines: oldLines, NewLines: newLines}
}

func cursorDirty() Effect { return Effect{Kind: EffectCursorDirty} }

func none() Effect { return Effect{} }
