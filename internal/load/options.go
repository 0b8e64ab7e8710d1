package load

type options struct {
	format    Format
	envFiles  []string
	expandEnv bool
}

func defaultOptions() options {
	return options{
		envFiles:  []string{".env", ".env.local"},
		expandEnv: true,
	}
}

// Option configures File and Site.
type Option func(*options)

// WithFormat overrides extension-based format detection.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithEnvFiles replaces the dotenv files loaded before expansion.
// Missing files are skipped.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) { o.envFiles = paths }
}

// WithoutEnvExpansion disables dotenv loading and ${VAR} expansion.
func WithoutEnvExpansion() Option {
	return func(o *options) {
		o.expandEnv = false
		o.envFiles = nil
	}
}
