package main

import (
	"flag"
	"fmt"
	"image"
	png "image/png"
	"path/filepath"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/benchview/benchview/src/logging"
	"github.com/benchview/benchview/src/pipeline"
	"github.com/benchview/benchview/src/plot"
	"github.com/benchview/benchview/src/table"
	"github.com/benchview/benchview/src/watch"
)

type uiState struct {
	app    fyne.App
	window fyne.Window
	log    *zap.Logger

	pipe *pipeline.Pipeline
	last pipeline.Result

	// widgets
	chartCanvas *canvas.Image
	colGroup    *widget.CheckGroup
	fileLabel   *widget.Label
	statusLabel *widget.Label
	watchChk    *widget.Check

	watcher *watch.Watcher
}

func main() {
	var fileFlag string
	var logLevel string
	flag.StringVar(&fileFlag, "file", "", "Path to a tab-separated .csv file to open at startup")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log := logging.New(logLevel)
	defer log.Sync()

	a := app.New()
	w := a.NewWindow("BenchView")
	w.Resize(fyne.NewSize(1100, 700))

	state := &uiState{
		app:    a,
		window: w,
		log:    log,
		pipe:   pipeline.New(table.Load, log),
	}
	if fileFlag != "" {
		state.pipe.SetFallbackPath(fileFlag)
	}

	state.fileLabel = widget.NewLabel(truncatePath(fileFlag, 60))
	state.statusLabel = widget.NewLabel("")
	state.chartCanvas = canvas.NewImageFromImage(plot.Blank(100, 60))
	state.chartCanvas.FillMode = canvas.ImageFillContain
	state.chartCanvas.SetMinSize(fyne.NewSize(800, 420))

	state.colGroup = widget.NewCheckGroup(nil, func(selected []string) {
		state.pipe.Select(selected)
		refresh(state, false)
	})
	selectAll := widget.NewButton("All", func() {
		state.colGroup.SetSelected(append([]string(nil), state.colGroup.Options...))
	})
	selectNone := widget.NewButton("None", func() {
		state.colGroup.SetSelected(nil)
	})
	colPanel := container.NewBorder(
		container.NewVBox(widget.NewLabel("Columns"), container.NewHBox(selectAll, selectNone)),
		nil, nil, nil,
		container.NewVScroll(state.colGroup),
	)

	state.watchChk = widget.NewCheck("Watch", func(on bool) { setWatching(state, on) })

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state) }),
		widget.NewButton("Reload", func() { state.pipe.Reload(); refresh(state, true) }),
		state.watchChk,
		widget.NewLabel("File:"), state.fileLabel,
	)
	bottom := container.NewHBox(state.statusLabel)

	split := container.NewHSplit(colPanel, container.NewStack(state.chartCanvas))
	split.SetOffset(0.2)
	w.SetContent(container.NewBorder(top, bottom, nil, nil, split))

	buildMenus(state)

	// Redraw the chart when the window width changes so it uses the space.
	done := make(chan struct{})
	w.SetOnClosed(func() {
		setWatching(state, false)
		close(done)
	})
	go func() {
		prevW := 0
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				c := w.Canvas()
				if c == nil {
					continue
				}
				curW := int(c.Size().Width)
				if curW != prevW {
					prevW = curW
					fyne.Do(func() { refresh(state, false) })
				}
			}
		}
	}()

	refresh(state, false)
	w.ShowAndRun()
}

func buildMenus(state *uiState) {
	exportItem := fyne.NewMenuItem("Export Chart…", func() { exportChartPNG(state, "chart.png") })
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", func() { state.pipe.Reload(); refresh(state, true) }),
		fyne.NewMenuItemSeparator(),
		exportItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu))

	canv := state.window.Canvas()
	if canv != nil {
		open := func(fyne.Shortcut) { openFileDialog(state) }
		reload := func(fyne.Shortcut) { state.pipe.Reload(); refresh(state, true) }
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, open)
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, open)
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, reload)
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, reload)
	}
}

// openFileDialog lets the user browse for a data file; only .csv files are
// offered, matching what the measurement scripts write.
func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.pipe.SetBrowsedPath(rc.URI().Path())
		refresh(state, true)
		if state.watchChk.Checked {
			// re-arm the watcher on the new path
			setWatching(state, true)
		}
	}, state.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
	d.Show()
}

// refresh runs one pipeline cycle and brings every widget in line with the
// result. interactive controls whether errors also pop a dialog (button and
// menu events) or just land in the status line (resize ticks, watch events).
func refresh(state *uiState, interactive bool) {
	res := state.pipe.Recompute()
	state.last = res

	state.fileLabel.SetText(truncatePath(res.Path, 60))
	if res.Available != nil {
		state.colGroup.Options = res.Available
		state.colGroup.Refresh()
	}

	state.chartCanvas.Image = renderResult(state, res)
	state.chartCanvas.Refresh()
	state.statusLabel.SetText(statusText(res))

	if interactive && res.Stage == pipeline.StageError {
		dialog.ShowError(res.Err, state.window)
	}
}

// renderResult turns a pipeline result into the image shown in the chart
// area. Failed or empty cycles get a captioned placeholder so the display
// state is never ambiguous.
func renderResult(state *uiState, res pipeline.Result) image.Image {
	cw, chh := chartSize(state)
	switch res.Stage {
	case pipeline.StageNoPath:
		return plot.Placeholder(cw, chh, "Open a tab-separated .csv file to plot.")
	case pipeline.StageError:
		return plot.Placeholder(cw, chh, fmt.Sprintf("%s: %v", res.Component, res.Err))
	}
	if res.Long == nil || res.Long.Len() == 0 {
		return plot.Placeholder(cw, chh, "Select one or more columns to plot.")
	}
	ch := plot.Build(res.Long, truncatePath(res.Path, 60), cw, chh)
	img, err := plot.RenderPNG(ch)
	if err != nil {
		state.log.Warn("chart render failed", zap.Error(err))
		return plot.Placeholder(cw, chh, fmt.Sprintf("render error: %v", err))
	}
	return img
}

func statusText(res pipeline.Result) string {
	switch res.Stage {
	case pipeline.StageNoPath:
		return "No file selected."
	case pipeline.StageError:
		return fmt.Sprintf("Error in %s: %v", res.Component, res.Err)
	}
	sel := 0
	if res.Long != nil {
		sel = len(res.Long.SeriesNames())
	}
	return fmt.Sprintf("%s: %d rows, %d columns, index %q, %d series plotted",
		filepath.Base(res.Path), res.Table.NumRows(), res.Table.NumCols(), res.Index, sel)
}

// chartSize computes the chart raster size from the current window width.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return 900, 420
	}
	sz := state.window.Canvas().Size()
	w := int(sz.Width*0.78) - 12
	if w < 640 {
		w = 640
	}
	h := int(float32(w) * 0.5)
	if h < 320 {
		h = 320
	}
	if h > 640 {
		h = 640
	}
	return w, h
}

// setWatching starts or stops the on-disk change watcher for the active
// file. Watch events funnel into the same reload gate as the button.
func setWatching(state *uiState, on bool) {
	if state.watcher != nil {
		state.watcher.Close()
		state.watcher = nil
	}
	if !on {
		return
	}
	if state.last.Path == "" {
		state.statusLabel.SetText("Open a file before enabling Watch.")
		state.watchChk.SetChecked(false)
		return
	}
	wt, err := watch.New(state.last.Path, watch.DefaultDebounce, func() {
		fyne.Do(func() {
			state.pipe.Reload()
			refresh(state, false)
		})
	}, state.log)
	if err != nil {
		state.log.Warn("watch failed", zap.Error(err))
		state.statusLabel.SetText(fmt.Sprintf("Watch failed: %v", err))
		state.watchChk.SetChecked(false)
		return
	}
	state.watcher = wt
}

// exportChartPNG saves the currently displayed chart image.
func exportChartPNG(state *uiState, defaultName string) {
	if state.chartCanvas == nil || state.chartCanvas.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		_ = png.Encode(wc, state.chartCanvas.Image)
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
