package internal

import "io"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config     *Config
	invocation *Invocation
	logOutput  io.Writer
}

// Invocation is what the command line asks for.
type Invocation struct {
	// Input is the export zip, or the export folder with Source.
	Input string
	// HugoDir receives the content and static trees.
	HugoDir string

	Source       bool
	Force        bool
	Clean        bool
	CleanContent bool
	CleanStatic  bool
	KeepTemp     bool
	Module       bool
	Verbose      bool
	Watch        bool

	// Overwrite is a site folder copied over the generated output.
	Overwrite string
	// Manifest overrides the manifest path from the config.
	Manifest string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithInvocation sets the command-line request.
func WithInvocation(inv *Invocation) Option {
	return func(a *application) {
		a.invocation = inv
	}
}

// WithLogOutput redirects the logs, stderr by default.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOutput = w
	}
}
