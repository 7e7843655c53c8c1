package accounts

import (
	"github.com/rs/zerolog"
)

// ZerologAdapter bridges a zerolog.Logger into the package Logger
// interface so the server binary can keep one logging pipeline.
type ZerologAdapter struct {
	zl zerolog.Logger
}

// NewZerologAdapter wraps the given zerolog logger.
func NewZerologAdapter(zl zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{zl: zl}
}

func (a *ZerologAdapter) Debug(msg string, args ...any) { a.emit(a.zl.Debug(), msg, args) }
func (a *ZerologAdapter) Info(msg string, args ...any)  { a.emit(a.zl.Info(), msg, args) }
func (a *ZerologAdapter) Warn(msg string, args ...any)  { a.emit(a.zl.Warn(), msg, args) }
func (a *ZerologAdapter) Error(msg string, args ...any) { a.emit(a.zl.Error(), msg, args) }

func (a *ZerologAdapter) emit(ev *zerolog.Event, msg string, args []any) {
	ev.Fields(fieldsFromArgs(args)).Msg(msg)
}

// fieldsFromArgs folds variadic key-value pairs into a map. A trailing
// value with no key is kept under "extra".
func fieldsFromArgs(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}

	fields := make(map[string]any, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			fields["extra"] = args[i:]
			break
		}
		fields[key] = args[i+1]
	}
	return fields
}
