package config

// AppName is used for the default config directory and log file names.
const AppName = "deckle"

// DefaultConfigFileName is looked up under the user config directory
// when no --config flag is given.
const DefaultConfigFileName = "config.toml"

// Editor defaults.
const (
	DefaultScrollOff = 3
	SystemClipboard  = false
)
