package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnvVar overrides the svut install directory.
const HomeEnvVar = "SVUT_HOME"

// InstallRoot is injected at build time via -ldflags when svut is installed
// away from its support files.
var InstallRoot = ""

// GetSVUTHome returns the svut install directory holding svut_h.sv.
// Priority order:
//  1. SVUT_HOME environment variable (if set)
//  2. Build-time InstallRoot
//  3. Directory of the running executable
func GetSVUTHome() (string, error) {
	return GetSVUTHomeWithRoot(InstallRoot)
}

// GetSVUTHomeWithRoot is GetSVUTHome with an explicit build-time root.
func GetSVUTHomeWithRoot(root string) (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home, nil
	}

	if root != "" {
		return root, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate svut executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe), nil
}
