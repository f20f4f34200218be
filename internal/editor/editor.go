package editor

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"PixelBoard/internal/config"
	"PixelBoard/internal/export"
	"PixelBoard/internal/logging"
	"PixelBoard/internal/project"
	"PixelBoard/internal/state"
	"PixelBoard/internal/tools"
)

var ErrNoPath = errors.New("no file path")

// Reason says why listeners are being notified.
type Reason int

const (
	// Edited covers commands executed or committed to history.
	Edited Reason = iota
	Undone
	Redone
	// Stroked is a live brush step not yet in history.
	Stroked
	// Loaded means the whole document was replaced.
	Loaded
	Saved
)

func (r Reason) String() string {
	switch r {
	case Edited:
		return "edited"
	case Undone:
		return "undone"
	case Redone:
		return "redone"
	case Stroked:
		return "stroked"
	case Loaded:
		return "loaded"
	case Saved:
		return "saved"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Change is passed to listeners after the document or its file state changed.
type Change struct {
	Reason Reason
	Region state.Rect
}

// Editor is one editing session: a document, its history, the tool machine
// and the file it is bound to. All methods except OnChange must be called
// from the goroutine that owns the session.
type Editor struct {
	cfg     config.Config
	doc     *state.Document
	history *state.History
	tools   *tools.Machine
	path    string

	mu        sync.Mutex
	listeners []func(Change)

	log *zap.Logger
}

func New(cfg config.Config) (*Editor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	doc, err := state.New(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Background,
		state.WithLimits(cfg.Limits()))
	if err != nil {
		return nil, err
	}
	e := &Editor{
		cfg:     cfg,
		doc:     doc,
		history: state.NewHistory(doc, cfg.History.Depth),
		log:     logging.Named("editor"),
	}
	e.tools = tools.New(e.history)
	e.tools.SetColor(cfg.Canvas.Foreground)
	e.history.OnChange(e.onHistory)
	return e, nil
}

func (e *Editor) Document() *state.Document { return e.doc }
func (e *Editor) History() *state.History   { return e.history }
func (e *Editor) Tools() *tools.Machine     { return e.tools }
func (e *Editor) Config() config.Config     { return e.cfg }
func (e *Editor) Path() string              { return e.path }
func (e *Editor) Modified() bool            { return e.doc.Modified() }

// Title is the file name shown in the window title, starred when unsaved.
func (e *Editor) Title() string {
	name := "untitled"
	if e.path != "" {
		name = filepath.Base(e.path)
	}
	if e.doc.Modified() {
		name += " *"
	}
	return name
}

// OnChange registers a listener. Listeners run on the session goroutine.
func (e *Editor) OnChange(fn func(Change)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

func (e *Editor) notify(c Change) {
	e.mu.Lock()
	listeners := append([]func(Change){}, e.listeners...)
	e.mu.Unlock()
	for _, fn := range listeners {
		fn(c)
	}
}

func (e *Editor) onHistory(ev state.Event) {
	reason := Edited
	switch ev.Direction {
	case state.Undone:
		reason = Undone
	case state.Redone:
		reason = Redone
	}
	e.log.Debug("history",
		zap.Stringer("direction", ev.Direction),
		zap.Stringer("command", ev.Command),
		zap.Int("undo", e.history.UndoLen()),
		zap.Int("redo", e.history.RedoLen()),
	)
	e.notify(Change{Reason: reason, Region: ev.Command.Region()})
}

// finishGesture commits a pending stroke before a command that must follow it.
func (e *Editor) finishGesture() error {
	_, err := e.tools.Finish()
	return err
}

func (e *Editor) execute(cmd *state.Command, err error) error {
	if err != nil {
		return err
	}
	if err := e.finishGesture(); err != nil {
		return err
	}
	return e.history.Execute(cmd)
}

// SetPixel paints one cell as an undoable command.
func (e *Editor) SetPixel(x, y int, c state.Color) error {
	return e.Paint([]state.Cell{{Point: state.Pt(x, y), Color: c}})
}

// Paint writes several cells as one undoable command.
func (e *Editor) Paint(cells []state.Cell) error {
	return e.execute(state.NewPaintCommand(e.doc, state.KindPaint, cells))
}

// Fill flood-fills from seed as one undoable command.
func (e *Editor) Fill(seed state.Point, c state.Color) error {
	return e.execute(state.NewFillCommand(e.doc, seed, c))
}

func (e *Editor) Resize(width, height int) error {
	return e.execute(state.NewResizeCommand(e.doc, width, height))
}

func (e *Editor) Clear() error {
	return e.execute(state.NewClearCommand(e.doc), nil)
}

func (e *Editor) Undo() (state.Rect, error) {
	if err := e.finishGesture(); err != nil {
		return state.Rect{}, err
	}
	return e.history.Undo()
}

func (e *Editor) Redo() (state.Rect, error) {
	if err := e.finishGesture(); err != nil {
		return state.Rect{}, err
	}
	return e.history.Redo()
}

// Drain returns and clears the regions to repaint.
func (e *Editor) Drain() []state.Rect {
	return e.doc.Tracker().Drain()
}

func (e *Editor) SetTool(k tools.Kind) error {
	_, err := e.tools.SetKind(k)
	return err
}

func (e *Editor) SetColor(c state.Color) {
	e.tools.SetColor(c)
}

func (e *Editor) Press(p state.Point) (tools.Result, error) {
	res, err := e.tools.Press(p)
	e.stroked(res)
	return res, err
}

func (e *Editor) Drag(p state.Point) tools.Result {
	res := e.tools.Drag(p)
	e.stroked(res)
	return res
}

func (e *Editor) Release(p state.Point) (tools.Result, error) {
	res, err := e.tools.Release(p)
	e.stroked(res)
	return res, err
}

// stroked reports live brush steps; committed commands are reported through
// history.
func (e *Editor) stroked(res tools.Result) {
	if res.Committed == nil && !res.Changed.Empty() {
		e.notify(Change{Reason: Stroked, Region: res.Changed})
	}
}

func (e *Editor) loaded() {
	e.history.Reset()
	e.tools.ResetOffset()
	e.notify(Change{Reason: Loaded, Region: e.doc.Bounds()})
}

// NewDocument replaces the session with an empty document.
func (e *Editor) NewDocument(width, height int, background state.Color) error {
	if err := e.doc.Reset(width, height, background); err != nil {
		return err
	}
	e.tools.Discard()
	e.path = ""
	e.log.Info("new document", zap.Int("width", width), zap.Int("height", height))
	e.loaded()
	return nil
}

// Open loads a project file. On error the session is unchanged, including a
// stroke still in progress.
func (e *Editor) Open(path string) error {
	if err := project.Load(path, e.doc); err != nil {
		return err
	}
	e.tools.Discard()
	e.path = path
	e.loaded()
	return nil
}

// Save writes the project to path, or to the current file when path is
// empty.
func (e *Editor) Save(path string) error {
	if path == "" {
		path = e.path
	}
	if path == "" {
		return ErrNoPath
	}
	if err := e.finishGesture(); err != nil {
		return err
	}
	written, err := project.Save(path, e.doc)
	if err != nil {
		return err
	}
	e.path = written
	e.notify(Change{Reason: Saved})
	return nil
}

// Export writes an image of the document; the format follows the extension.
func (e *Editor) Export(path string) error {
	if err := e.finishGesture(); err != nil {
		return err
	}
	if err := export.File(path, e.doc, e.cfg.Export.Scale); err != nil {
		return err
	}
	e.log.Info("exported", zap.String("path", path), zap.Int("scale", e.cfg.Export.Scale))
	return nil
}
