package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/brandscan"
)

// Ensure LoggingRegistry implements brandscan.HeroSelectorRegistry.
var _ brandscan.HeroSelectorRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a HeroSelectorRegistry with debug logging for
// platform detection.
type LoggingRegistry struct {
	next     brandscan.HeroSelectorRegistry
	detector brandscan.PlatformDetector
	logger   *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next brandscan.HeroSelectorRegistry, detector brandscan.PlatformDetector, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, detector: detector, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(platform brandscan.Platform) brandscan.HeroSelector {
	return r.next.Get(platform)
}

// GetForHTML detects the platform, logs it, and returns the appropriate selector.
func (r *LoggingRegistry) GetForHTML(html string) brandscan.HeroSelector {
	begin := time.Now()
	platform := r.detector.Detect(html)
	platformName := string(platform)
	if platform == brandscan.PlatformUnknown {
		platformName = "(unknown)"
	}
	r.logger.Info("platform detection",
		"platform", platformName,
		"duration", time.Since(begin),
	)
	return r.next.GetForHTML(html)
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(platform brandscan.Platform, selector brandscan.HeroSelector) {
	r.next.Register(platform, selector)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []brandscan.Platform {
	return r.next.List()
}
