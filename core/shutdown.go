package core

import (
	"context"
)

// ShutdownFunc is a cleanup handler run during graceful shutdown, such as
// stopping the HTTP server or sweeping the upload directory. The context
// carries the shutdown deadline. Handlers must be safe to call twice.
//
// Example:
//
//	var stopServer ShutdownFunc = func(ctx context.Context) error {
//	    return srv.Shutdown(ctx)
//	}
type ShutdownFunc func(ctx context.Context) error
