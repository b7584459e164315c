package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultTitle is the default document title of the site.
	DefaultTitle = "Vincenteof"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultOutput writes rendered pages to stdout.
	DefaultOutput = "-"
)
