package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PixelBoard/internal/state"
	"PixelBoard/internal/tools"
)

// --- Colour swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    state.Color
	OnTapped func(state.Color)

	fill *canvas.Rectangle
}

func newColorSwatch(c state.Color, tapped func(state.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) SetColor(c state.Color) {
	s.Color = c
	if s.fill != nil {
		s.fill.FillColor = c.NRGBA()
		s.fill.Refresh()
	}
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	s.fill = canvas.NewRectangle(s.Color.NRGBA())
	s.fill.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(s.fill, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

func toolIcon(k tools.Kind) fyne.Resource {
	switch k {
	case tools.Fill:
		return theme.ColorChromaticIcon()
	case tools.Eraser:
		return theme.ContentRemoveIcon()
	case tools.Picker:
		return theme.ColorPaletteIcon()
	case tools.Pan:
		return theme.ViewFullScreenIcon()
	}
	return theme.DocumentCreateIcon()
}

// --- The main toolbar ---
func (a *App) newToolbar() fyne.CanvasObject {
	file := widget.NewToolbar(
		widget.NewToolbarAction(theme.FileIcon(), a.newDocument),
		widget.NewToolbarAction(theme.FolderOpenIcon(), a.openProject),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), a.saveProject),
		widget.NewToolbarAction(theme.DownloadIcon(), a.exportImage),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), a.undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), a.redo),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRestoreIcon(), a.resizeCanvas),
		widget.NewToolbarAction(theme.ContentClearIcon(), a.clearCanvas),
	)

	toolbar := widget.NewToolbar()
	for _, k := range tools.Kinds() {
		toolbar.Append(widget.NewToolbarAction(toolIcon(k), func() { a.selectTool(k) }))
	}

	// --- Colour palette ---
	a.current = newColorSwatch(a.ed.Tools().Color(), func(state.Color) { a.pickColor() })
	swatches := container.NewHBox()
	for _, c := range basePalette {
		swatches.Add(newColorSwatch(c, a.chooseColor))
	}
	a.recentBox = container.NewHBox()
	a.refreshRecent()

	zoom := widget.NewToolbar(
		widget.NewToolbarAction(theme.ZoomOutIcon(), a.board.ZoomOut),
		widget.NewToolbarAction(theme.ZoomFitIcon(), a.board.ResetView),
		widget.NewToolbarAction(theme.ZoomInIcon(), a.board.ZoomIn),
	)

	// --- Assemble everything ---
	return container.NewVBox(
		container.NewHBox(file, layout.NewSpacer(), zoom),
		container.NewHBox(
			widget.NewLabel("Tool:"),
			toolbar,
			widget.NewSeparator(),
			widget.NewLabel("Colour:"),
			a.current,
			swatches,
			widget.NewSeparator(),
			widget.NewLabel("Recent:"),
			a.recentBox,
			layout.NewSpacer(),
		),
	)
}

func (a *App) refreshRecent() {
	a.recentBox.RemoveAll()
	for _, c := range a.recent.list() {
		a.recentBox.Add(newColorSwatch(c, a.chooseColor))
	}
	a.recentBox.Refresh()
}
