package cfgloader

// Options holds configuration options for MustLoad.
type Options struct {
	// Silent disables printing the loaded config to stdout when set to true.
	Silent bool
}

// Option is a functional option for configuring MustLoad behavior.
type Option func(*Options)

// WithSilent disables printing the loaded config to stdout.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}
