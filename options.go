package qualname

import "time"

// Options configures the behavior of corpus components
type Options struct {
	// RootDir is the corpus root directory
	RootDir string

	// CacheTTL is the time-to-live for cached scan results
	// If zero, caching is disabled
	CacheTTL time.Duration

	// MaxFixtureSize is the maximum fixture file size in bytes
	MaxFixtureSize int64

	// Languages restricts which fixture languages are considered
	// If empty, all supported languages are included
	Languages []Language

	// Strict promotes unexpected-symbol warnings to verification errors
	Strict bool
}

// DefaultOptions returns the default corpus options
func DefaultOptions() *Options {
	return &Options{
		RootDir:        ".",
		CacheTTL:       5 * time.Minute,
		MaxFixtureSize: maxFixtureSize,
	}
}

// wantsLanguage reports whether the options include the given language
func (o *Options) wantsLanguage(lang Language) bool {
	if len(o.Languages) == 0 {
		return true
	}
	for _, l := range o.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Option is a function that configures Options
type Option func(*Options)

// WithRootDir sets the corpus root directory
func WithRootDir(dir string) Option {
	return func(o *Options) {
		o.RootDir = dir
	}
}

// WithCacheTTL sets the scan cache TTL
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *Options) {
		o.CacheTTL = ttl
	}
}

// WithMaxFixtureSize sets the maximum fixture file size
func WithMaxFixtureSize(size int64) Option {
	return func(o *Options) {
		o.MaxFixtureSize = size
	}
}

// WithLanguages restricts the fixture languages considered
func WithLanguages(langs ...Language) Option {
	return func(o *Options) {
		o.Languages = langs
	}
}

// WithStrict enables strict verification
func WithStrict(strict bool) Option {
	return func(o *Options) {
		o.Strict = strict
	}
}
