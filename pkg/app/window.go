package app

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"mondrian/pkg/dom"
	"mondrian/pkg/layout"
	"mondrian/pkg/render"
	"mondrian/pkg/scene"
)

// Window shows one scene at a fixed viewport size.
type Window struct {
	app    *App
	win    fyne.Window
	ref    string
	width  int
	height int
	img    *canvas.Image

	mu      sync.Mutex
	scene   *scene.Scene
	tree    *layout.LayoutTreeNode
	watcher *fsnotify.Watcher
}

// OpenWindow loads ref and opens a window rendering it at the given
// viewport size.
func (a *App) OpenWindow(ref string, width, height int) (*Window, error) {
	w := &Window{
		app:    a,
		win:    a.fyne.NewWindow("mondrian - " + ref),
		ref:    ref,
		width:  width,
		height: height,
	}
	w.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
	w.img.FillMode = canvas.ImageFillOriginal

	if err := w.Reload(); err != nil {
		return nil, err
	}

	w.win.SetContent(newSceneView(w.img, w.tapped))
	w.win.Resize(fyne.NewSize(float32(width), float32(height)))
	return w, nil
}

// Reload runs the full pipeline on the window's scene ref and swaps the
// result in. The canvas keeps showing the old frame until it is
// refreshed; the watcher does that on the UI thread, and a window that
// is not yet showing paints the new frame on Show.
func (w *Window) Reload() error {
	sc, err := w.app.loader.Load(w.ref)
	if err != nil {
		return err
	}

	engine := layout.NewLayoutEngine(w.app.shaper)
	viewport := layout.Size{Width: float64(w.width), Height: float64(w.height)}
	tree := engine.Layout(sc.Root(), viewport)

	r, err := render.NewRenderer(w.width, w.height, w.app.fontData)
	if err != nil {
		return err
	}
	r.Draw(sc.Root(), tree)

	w.mu.Lock()
	w.scene = sc
	w.tree = tree
	w.mu.Unlock()
	w.img.Image = r.Image()

	w.app.log.Debug("scene rendered",
		zap.String("scene", w.ref),
		zap.Int("blocks", engine.CachedBlocks()))
	return nil
}

// Scene returns the currently shown scene.
func (w *Window) Scene() *scene.Scene {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scene
}

// Layout returns the layout tree of the currently shown frame.
func (w *Window) Layout() *layout.LayoutTreeNode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tree
}

// ShowAndRun shows the window and runs the event loop until it closes.
func (w *Window) ShowAndRun() {
	w.win.ShowAndRun()
}

// Close stops the watcher, if any, and closes the window.
func (w *Window) Close() {
	w.mu.Lock()
	watcher := w.watcher
	w.watcher = nil
	w.mu.Unlock()
	if watcher != nil {
		watcher.Close()
	}
	w.win.Close()
}

func (w *Window) tapped(pos fyne.Position) {
	w.mu.Lock()
	sc, tree := w.scene, w.tree
	w.mu.Unlock()
	if sc == nil || tree == nil {
		return
	}

	pt := layout.Point{X: float64(pos.X), Y: float64(pos.Y)}
	hit := layout.HitTest(sc.Root(), tree, pt)
	if hit == nil {
		w.app.log.Info("tap outside scene",
			zap.Float64("x", pt.X), zap.Float64("y", pt.Y))
		return
	}
	w.app.log.Info("tap",
		zap.Float64("x", pt.X), zap.Float64("y", pt.Y),
		zap.String("node", nodeLabel(hit.Node)),
		zap.String("id", hit.Node.ID),
		zap.Float64("boxX", hit.Position.X),
		zap.Float64("boxY", hit.Position.Y),
		zap.Float64("boxW", hit.Layout.Size.Width),
		zap.Float64("boxH", hit.Layout.Size.Height))
}

func nodeLabel(n *dom.Node) string {
	if n.Type == dom.TextNode {
		return "#text"
	}
	return n.Tag
}

// sceneView shows the rendered frame and reports taps.
type sceneView struct {
	widget.BaseWidget
	img   *canvas.Image
	onTap func(fyne.Position)
}

func newSceneView(img *canvas.Image, onTap func(fyne.Position)) *sceneView {
	v := &sceneView{img: img, onTap: onTap}
	v.ExtendBaseWidget(v)
	return v
}

func (v *sceneView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.img)
}

func (v *sceneView) Tapped(ev *fyne.PointEvent) {
	if v.onTap != nil {
		v.onTap(ev.Position)
	}
}
