package config

import (
	"os"
	"path/filepath"
)

const defaultBaseDir = ".bartr"

// Paths holds resolved filesystem paths for Bartr client data.
type Paths struct {
	Base        string // ~/.bartr
	Config      string // ~/.bartr/config.yaml
	Credentials string // ~/.bartr/credentials.db
	Logs        string // ~/.bartr/logs
}

// ResolvePaths computes all standard paths from the home directory.
// BARTR_HOME overrides the default base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("BARTR_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	return Paths{
		Base:        base,
		Config:      filepath.Join(base, "config.yaml"),
		Credentials: filepath.Join(base, "credentials.db"),
		Logs:        filepath.Join(base, "logs"),
	}, nil
}

// EnsureDirs creates the standard directories if they don't exist.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.Base, p.Logs} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return err
		}
	}
	return nil
}
