package mock

import (
	"time"

	"github.com/fwojciec/brandscan"
)

var (
	_ brandscan.PlatformDetector = (*PlatformDetector)(nil)
	_ brandscan.Prober           = (*Prober)(nil)
)

// PlatformDetector is a mock implementation of brandscan.PlatformDetector.
type PlatformDetector struct {
	DetectFn func(html string) brandscan.Platform
}

func (d *PlatformDetector) Detect(html string) brandscan.Platform {
	return d.DetectFn(html)
}

// Prober is a mock implementation of brandscan.Prober.
type Prober struct {
	DetectFn      func(html string) brandscan.Platform
	RequiresJSFn  func(platform brandscan.Platform) (bool, bool)
	RenderDelayFn func(platform brandscan.Platform) time.Duration
}

func (p *Prober) Detect(html string) brandscan.Platform {
	return p.DetectFn(html)
}

func (p *Prober) RequiresJS(platform brandscan.Platform) (bool, bool) {
	return p.RequiresJSFn(platform)
}

func (p *Prober) RenderDelay(platform brandscan.Platform) time.Duration {
	return p.RenderDelayFn(platform)
}
