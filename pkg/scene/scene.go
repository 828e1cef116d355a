// Package scene loads scene files into styled element trees. A load
// reads the source from a path or URL, parses the markup, runs any
// embedded scripts against the tree, and resolves styles, in that
// order, so layout always sees the post-script document.
package scene

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"mondrian/pkg/dom"
	"mondrian/pkg/markup"
	"mondrian/pkg/script"
	"mondrian/pkg/style"
)

// Scene is a loaded document plus the reference it came from.
type Scene struct {
	Source string
	Doc    *markup.Document
}

// Root returns the scene's root element.
func (s *Scene) Root() *dom.Node { return s.Doc.Root }

// Loader runs the load pipeline.
type Loader struct {
	log  *zap.Logger
	base style.Style
}

// NewLoader returns a loader that logs through log. A nil logger
// discards script console output and script failure reports.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log, base: style.Default()}
}

// SetBaseStyle overrides the style the scene root inherits from.
func (l *Loader) SetBaseStyle(s style.Style) { l.base = s }

// Load reads ref, a file path or an http(s) URL, and runs the pipeline
// on its content.
func (l *Loader) Load(ref string) (*Scene, error) {
	var (
		src []byte
		err error
	)
	if IsNetworkRef(ref) {
		src, err = fetch(ref)
	} else {
		src, err = os.ReadFile(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", ref, err)
	}
	return l.LoadSource(ref, string(src))
}

// LoadSource runs the pipeline on already-read scene source. ref only
// labels the scene in errors and logs.
//
// A failing script does not fail the load: the document keeps whatever
// state the scripts reached, gets its styles resolved, and renders.
// The failure is logged so the author can find it.
func (l *Loader) LoadSource(ref, src string) (*Scene, error) {
	doc, err := markup.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing scene %s: %w", ref, err)
	}

	if len(doc.Scripts) > 0 {
		if err := script.New(l.log).Execute(doc); err != nil {
			l.log.Error("scene script failed",
				zap.String("scene", ref),
				zap.Error(err))
		}
	}

	if err := doc.Root.ResolveStyles(l.base); err != nil {
		return nil, fmt.Errorf("resolving styles in %s: %w", ref, err)
	}
	return &Scene{Source: ref, Doc: doc}, nil
}
