// export_test.go exports private functions for white-box testing.
package watcher

import (
	"github.com/fsnotify/fsnotify"
	"go.trai.ch/bust/internal/core/ports"
)

// ConvertEvent exposes convertEvent for testing.
func ConvertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	return convertEvent(event)
}
