package model

// Flags are the command line overrides of the CLI commands
type Flags struct {
	// serve
	ListenAddr string
	UIDir      string

	// report
	Waste bool
}
