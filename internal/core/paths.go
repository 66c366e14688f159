package core

import (
	"os"
	"path/filepath"
)

type Paths struct {
	HomeDir           string
	ConfigDir         string
	GlobalContextFile string
	SettingsFile      string
	DataDir           string
	LogFile           string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		configDir, err := os.UserConfigDir()
		if err != nil {
			configDir = filepath.Join(homeDir, ".config")
		}
		aiDir := filepath.Join(configDir, "ai")

		defaultPaths = &Paths{
			HomeDir:           homeDir,
			ConfigDir:         aiDir,
			GlobalContextFile: filepath.Join(aiDir, "global.md"),
			SettingsFile:      filepath.Join(aiDir, "config.yaml"),
			DataDir:           filepath.Join(homeDir, ".aictx"),
			LogFile:           filepath.Join(homeDir, ".aictx", "aictx.log"),
		}

		err = os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

// ConfigDir is the per-user directory holding the global context file
// and the settings file.
func ConfigDir() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigDir
}

func GlobalContextFile() string {
	ensureDefaultPaths()
	return defaultPaths.GlobalContextFile
}

func SettingsFile() string {
	ensureDefaultPaths()
	return defaultPaths.SettingsFile
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
