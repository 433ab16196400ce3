package recording

import (
	"fmt"
	"image"
	"sort"
	"sync"

	"github.com/nullpops/awt"
)

// TargetFactory creates a host of the given pixel size together with the
// image it draws into.
type TargetFactory func(width, height int) (awt.Rasterizer, image.Image)

var (
	registryMu sync.RWMutex
	targets    = make(map[string]TargetFactory)
)

// Register makes a host factory available by name. It is typically called
// from init() in host packages, following the database/sql driver pattern:
//
//	func init() {
//	    recording.Register("raster", newRasterTarget)
//	}
//
// Register panics if factory is nil or name is already registered.
func Register(name string, factory TargetFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("recording: Register factory is nil")
	}
	if _, dup := targets[name]; dup {
		panic("recording: Register called twice for " + name)
	}
	targets[name] = factory
}

// Unregister removes a factory. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(targets, name)
}

// NewTarget creates a host by name.
//
//	import _ "github.com/nullpops/awt/raster" // register "raster"
func NewTarget(name string, width, height int) (awt.Rasterizer, image.Image, error) {
	registryMu.RLock()
	factory, ok := targets[name]
	registryMu.RUnlock()

	if !ok {
		return nil, nil, fmt.Errorf("recording: unknown target %q (forgotten import?)", name)
	}
	if width <= 0 || height <= 0 {
		return nil, nil, fmt.Errorf("recording: invalid target size %dx%d", width, height)
	}
	host, img := factory(width, height)
	return host, img, nil
}

// Targets returns the registered names in sorted order.
func Targets() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name has a factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := targets[name]
	return ok
}
