package hostmodule

import (
	"sync"

	"go.uber.org/zap"

	"github.com/enovales/winres/resource"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the hostmodule package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the hostmodule package's logger.
// This must be called before any modules are opened.
func SetLogger(l *zap.Logger) {
	logger = l
}

// handleLog traces handle issue and invalidation for one module.
type handleLog struct {
	path string
}

func (o handleLog) OnHandleEvent(e resource.Event) {
	switch e.Type {
	case resource.EventIssued:
		Logger().Debug("resource handle issued",
			zap.String("module", o.path), zap.Uint64("handle", uint64(e.Handle)))
	case resource.EventInvalidated:
		Logger().Debug("resource handle invalidated",
			zap.String("module", o.path), zap.Uint64("handle", uint64(e.Handle)))
	}
}
