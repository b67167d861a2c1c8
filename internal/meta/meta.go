// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep the tool identity in one place.
package meta

const (
	// Project Identity
	AppName   = "domd"
	Slug      = "domd"
	EnvPrefix = "DOMD"

	// Project Layout
	ConfigFile = "domd.yaml"
	IgnoreFile = ".domdignore"
	EnvFile    = ".env"
)
