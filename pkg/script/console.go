package script

import (
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// registerConsole installs console.log/warn/error, mapped onto the
// engine's logger at the matching levels.
func (e *Engine) registerConsole() {
	console := e.vm.NewObject()
	console.Set("log", e.consoleFn(e.log.Info))
	console.Set("warn", e.consoleFn(e.log.Warn))
	console.Set("error", e.consoleFn(e.log.Error))
	e.vm.Set("console", console)
}

func (e *Engine) consoleFn(emit func(string, ...zap.Field)) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		emit(strings.Join(parts, " "), zap.String("source", "script"))
		return goja.Undefined()
	}
}
