// Package version holds build-time version information.
package version

// Set via -ldflags at build time.
var (
	Version = "0.1.0-dev"
	Commit  = ""
)

// Info returns a human-readable version string.
func Info() string {
	if Commit == "" {
		return "bartr " + Version
	}
	return "bartr " + Version + " (" + Commit + ")"
}
