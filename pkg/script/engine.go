// Package script runs the scripts embedded in a scene against its
// element tree. Scripts see a document global with lookup and creation
// methods, element proxies that mutate the real dom nodes, and a console
// that forwards to the host's logger. All scripts of a document share
// one runtime, so globals defined by an earlier script are visible to
// later ones.
package script

import (
	"fmt"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"mondrian/pkg/markup"
)

// Engine owns one goja runtime. An engine is not safe for concurrent
// use; the scene pipeline runs scripts before layout ever starts.
type Engine struct {
	vm  *goja.Runtime
	log *zap.Logger
}

// New returns an engine whose console methods write to log. A nil
// logger silences console output.
func New(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{vm: goja.New(), log: log}
	e.registerConsole()
	return e
}

// Execute binds the document global to doc and runs its scripts in
// order. The first failing script stops execution.
func (e *Engine) Execute(doc *markup.Document) error {
	registerDocument(e.vm, doc)
	for i, src := range doc.Scripts {
		if _, err := e.vm.RunString(src); err != nil {
			return fmt.Errorf("script %d: %w", i+1, err)
		}
	}
	return nil
}
