// Package app is the window runtime: it owns the loaded scene, lays it
// out at the window size, paints frames, and shows them in a fyne
// window. Taps map back through the layout tree to the source element.
package app

import (
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"mondrian/pkg/scene"
	"mondrian/pkg/text"
)

// App bundles the pieces every window shares: the fyne application,
// the scene loader, and the font assets for shaping and painting.
type App struct {
	fyne     fyne.App
	log      *zap.Logger
	loader   *scene.Loader
	shaper   text.Shaper
	fontData []byte
}

// New builds the runtime around the given font collection. A nil
// collection uses the bundled default font.
func New(log *zap.Logger, fonts *text.Collection) (*App, error) {
	return newWith(fyneapp.New(), log, fonts)
}

func newWith(fa fyne.App, log *zap.Logger, fonts *text.Collection) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if fonts == nil {
		fonts = text.NewCollection()
	}
	shaper, err := fonts.NewShaper()
	if err != nil {
		return nil, fmt.Errorf("font setup: %w", err)
	}
	data, err := fonts.DefaultData()
	if err != nil {
		return nil, fmt.Errorf("font setup: %w", err)
	}
	return &App{
		fyne:     fa,
		log:      log,
		loader:   scene.NewLoader(log),
		shaper:   shaper,
		fontData: data,
	}, nil
}
