package mcp

import (
	"context"
	"os"
	"time"

	"rstcheck/internal/logging"
)

// ParentPollInterval is how often WatchParent checks the parent PID.
var ParentPollInterval = 2 * time.Second

var getppid = os.Getppid

// WatchParent cancels the server when its parent process goes away, so an
// MCP client that exits without closing stdin does not leave rstcheck
// running. It never reads stdin: the stdio transport owns it.
//
// The returned channel is closed once the watcher goroutine exits, either
// because ctx was canceled or because parent death was detected.
func WatchParent(ctx context.Context, cancel context.CancelFunc) <-chan struct{} {
	ppid := getppid()
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(ParentPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if getppid() != ppid {
					logging.New("mcp").Warn("parent process exited, shutting down", "ppid", ppid)
					cancel()
					return
				}
			}
		}
	}()
	return done
}
