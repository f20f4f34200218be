package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"PixelBoard/internal/editor"
	"PixelBoard/internal/logging"
	share "PixelBoard/internal/net"
	"PixelBoard/internal/state"
	"PixelBoard/internal/tools"
)

const (
	appID     = "io.pixelboard.editor"
	prefColor = "color"
	prefZoom  = "zoom"
)

// App is the editor window.
type App struct {
	fyneApp fyne.App
	win     fyne.Window
	ed      *editor.Editor
	board   *Board

	status    *widget.Label
	cursor    *widget.Label
	current   *colorSwatch
	recent    recentColors
	recentBox *fyne.Container

	log *zap.Logger
}

// Run opens the editor window for ed and blocks until it is closed.
// shareLink is shown in the status bar when sharing is on.
func Run(ed *editor.Editor, shareLink string) {
	a := &App{
		fyneApp: app.NewWithID(appID),
		ed:      ed,
		status:  widget.NewLabel("Ready"),
		cursor:  widget.NewLabel(""),
		log:     logging.Named("ui"),
	}
	a.win = a.fyneApp.NewWindow("PixelBoard")
	a.win.Resize(fyne.NewSize(1024, 768))

	a.restorePreferences()

	a.board = NewBoard(ed)
	a.board.SetZoom(float32(a.fyneApp.Preferences().FloatWithFallback(prefZoom, float64(DefaultZoom))))
	a.board.OnPicked = a.chooseColor
	a.board.OnError = a.showError
	a.board.OnHover = a.showCursor
	a.board.OnZoom = func(z float32) { a.fyneApp.Preferences().SetFloat(prefZoom, float64(z)) }

	ed.OnChange(func(editor.Change) {
		a.board.Sync()
		a.updateTitle()
		a.updateStatus()
	})

	toolbar := a.newToolbar()
	statusBar := container.NewHBox(a.status, widget.NewSeparator(), a.cursor)
	if shareLink != "" {
		statusBar.Add(widget.NewSeparator())
		statusBar.Add(widget.NewLabel("Share: " + shareLink))
		statusBar.Add(widget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() {
			a.fyneApp.Clipboard().SetContent(shareLink)
			a.setStatus("Share link copied")
		}))
	}

	a.win.SetContent(container.NewBorder(toolbar, statusBar, nil, nil, a.board))
	a.addShortcuts()
	a.win.SetCloseIntercept(a.confirmQuit)
	a.updateTitle()
	a.updateStatus()
	a.win.ShowAndRun()
}

func (a *App) restorePreferences() {
	if s := a.fyneApp.Preferences().String(prefColor); s != "" {
		if c, err := state.ParseColor(s); err == nil {
			a.ed.SetColor(c)
		}
	}
	a.recent.add(a.ed.Tools().Color())
}

func (a *App) addShortcuts() {
	c := a.win.Canvas()
	add := func(key fyne.KeyName, mod fyne.KeyModifier, fn func()) {
		c.AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: mod}, func(fyne.Shortcut) { fn() })
	}
	add(fyne.KeyZ, fyne.KeyModifierShortcutDefault, a.undo)
	add(fyne.KeyY, fyne.KeyModifierShortcutDefault, a.redo)
	add(fyne.KeyZ, fyne.KeyModifierShortcutDefault|fyne.KeyModifierShift, a.redo)
	add(fyne.KeyS, fyne.KeyModifierShortcutDefault, a.saveProject)
	add(fyne.KeyO, fyne.KeyModifierShortcutDefault, a.openProject)
	add(fyne.KeyN, fyne.KeyModifierShortcutDefault, a.newDocument)

	keys := map[fyne.KeyName]tools.Kind{
		fyne.KeyB: tools.Brush,
		fyne.KeyF: tools.Fill,
		fyne.KeyE: tools.Eraser,
		fyne.KeyI: tools.Picker,
		fyne.KeyH: tools.Pan,
	}
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			if r := a.ed.Tools().Cancel(); !r.Empty() {
				a.board.Sync()
			}
			return
		}
		if k, ok := keys[ev.Name]; ok {
			a.selectTool(k)
		}
	})
}

func (a *App) updateTitle() {
	a.win.SetTitle("PixelBoard - " + a.ed.Title())
}

func (a *App) updateStatus() {
	doc := a.ed.Document()
	a.status.SetText(fmt.Sprintf("%s | %dx%d | undo %d redo %d",
		a.ed.Tools().Kind(), doc.Width(), doc.Height(),
		a.ed.History().UndoLen(), a.ed.History().RedoLen()))
}

func (a *App) setStatus(text string) {
	a.status.SetText(text)
}

func (a *App) showCursor(p state.Point, inside bool) {
	if !inside {
		a.cursor.SetText("")
		return
	}
	a.cursor.SetText(p.String())
}

func (a *App) showError(err error) {
	a.log.Warn("operation failed", zap.Error(err))
	dialog.ShowError(errors.New(userMessage(err)), a.win)
}

func (a *App) selectTool(k tools.Kind) {
	if err := a.ed.SetTool(k); err != nil {
		a.showError(err)
	}
	a.updateStatus()
}

// chooseColor makes c the active colour.
func (a *App) chooseColor(c state.Color) {
	a.ed.SetColor(c)
	a.current.SetColor(c)
	a.recent.add(c)
	a.refreshRecent()
	a.fyneApp.Preferences().SetString(prefColor, c.String())
}

func (a *App) pickColor() {
	picker := dialog.NewColorPicker("Colour", "Pick the paint colour", func(c color.Color) {
		a.chooseColor(state.FromColor(c))
	}, a.win)
	picker.Advanced = true
	picker.SetColor(a.ed.Tools().Color())
	picker.Show()
}

func (a *App) undo() {
	if _, err := a.ed.Undo(); err != nil {
		a.setStatus(userMessage(err))
		return
	}
	a.updateStatus()
}

func (a *App) redo() {
	if _, err := a.ed.Redo(); err != nil {
		a.setStatus(userMessage(err))
		return
	}
	a.updateStatus()
}

func (a *App) clearCanvas() {
	if err := a.ed.Clear(); err != nil {
		a.showError(err)
	}
	a.updateStatus()
}

// sizeForm asks for canvas dimensions and calls done with them.
func (a *App) sizeForm(title, confirm string, done func(w, h int)) {
	doc := a.ed.Document()
	width := widget.NewEntry()
	width.SetText(strconv.Itoa(doc.Width()))
	height := widget.NewEntry()
	height.SetText(strconv.Itoa(doc.Height()))

	items := []*widget.FormItem{
		widget.NewFormItem("Width", width),
		widget.NewFormItem("Height", height),
	}
	dialog.ShowForm(title, confirm, "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		w, errW := strconv.Atoi(width.Text)
		h, errH := strconv.Atoi(height.Text)
		if errW != nil || errH != nil {
			a.showError(fmt.Errorf("%w: %q x %q", state.ErrInvalidDimensions, width.Text, height.Text))
			return
		}
		done(w, h)
	}, a.win)
}

func (a *App) resizeCanvas() {
	a.sizeForm("Resize canvas", "Resize", func(w, h int) {
		if err := a.ed.Resize(w, h); err != nil {
			a.showError(err)
		}
		a.updateStatus()
	})
}

func (a *App) newDocument() {
	create := func() {
		a.sizeForm("New canvas", "Create", func(w, h int) {
			if err := a.ed.NewDocument(w, h, a.ed.Config().Canvas.Background); err != nil {
				a.showError(err)
				return
			}
			a.board.ResetView()
			a.updateStatus()
		})
	}
	a.unlessUnsaved(create)
}

// unlessUnsaved runs fn, asking first when there are unsaved changes.
func (a *App) unlessUnsaved(fn func()) {
	if !a.ed.Modified() {
		fn()
		return
	}
	dialog.ShowConfirm("Unsaved changes", "Discard the changes to "+a.ed.Title()+"?", func(ok bool) {
		if ok {
			fn()
		}
	}, a.win)
}

func (a *App) openProject() {
	a.unlessUnsaved(func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil {
				a.showError(err)
				return
			}
			if r == nil {
				return
			}
			path := r.URI().Path()
			r.Close()
			if err := a.ed.Open(path); err != nil {
				a.showError(err)
				return
			}
			a.board.ResetView()
			a.updateStatus()
			a.setStatus("Opened " + a.ed.Title())
		}, a.win)
		d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
		d.Show()
	})
}

func (a *App) saveProject() {
	if a.ed.Path() != "" {
		a.save("")
		return
	}
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if w == nil {
			return
		}
		path := w.URI().Path()
		w.Close()
		a.save(path)
	}, a.win)
	d.SetFileName("untitled.json")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (a *App) save(path string) {
	if err := a.ed.Save(path); err != nil {
		a.showError(err)
		return
	}
	a.setStatus("Saved " + a.ed.Title())
}

func (a *App) exportImage() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if w == nil {
			return
		}
		path := w.URI().Path()
		w.Close()
		if err := a.ed.Export(path); err != nil {
			a.showError(err)
			return
		}
		a.setStatus("Exported " + path)
	}, a.win)
	d.SetFileName("pixelboard.png")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".bmp", ".pdf"}))
	d.Show()
}

func (a *App) confirmQuit() {
	a.unlessUnsaved(func() {
		a.win.Close()
	})
}

// RunViewer shows a read-only window following v until it is closed.
func RunViewer(ctx context.Context, v *share.Viewer) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fa := app.NewWithID(appID)
	win := fa.NewWindow("PixelBoard viewer - " + v.Addr())
	win.Resize(fyne.NewSize(800, 600))

	status := widget.NewLabel("Connected to " + v.Addr())
	board := NewViewerBoard(v.Replica().View)
	zoom := widget.NewToolbar(
		widget.NewToolbarAction(theme.ZoomOutIcon(), board.ZoomOut),
		widget.NewToolbarAction(theme.ZoomFitIcon(), board.ResetView),
		widget.NewToolbarAction(theme.ZoomInIcon(), board.ZoomIn),
	)
	win.SetContent(container.NewBorder(zoom, status, nil, nil, board))

	log := logging.Named("ui")
	go func() {
		err := v.Run(ctx, func() { fyne.Do(board.Sync) })
		if err != nil {
			log.Warn("viewer stopped", zap.Error(err))
		}
		fyne.Do(func() { status.SetText("Disconnected from " + v.Addr()) })
	}()

	win.ShowAndRun()
}
