package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestGetSVUTHomeWithEnvVar tests SVUT_HOME env var takes precedence
func TestGetSVUTHomeWithEnvVar(t *testing.T) {
	customHome := t.TempDir()
	t.Setenv(HomeEnvVar, customHome)

	home, err := GetSVUTHomeWithRoot(t.TempDir())
	if err != nil {
		t.Fatalf("GetSVUTHomeWithRoot() error = %v", err)
	}

	if home != customHome {
		t.Errorf("GetSVUTHomeWithRoot() = %q, want %q", home, customHome)
	}
}

// TestGetSVUTHomeWithBuildTimeRoot tests build-time injected root
func TestGetSVUTHomeWithBuildTimeRoot(t *testing.T) {
	t.Setenv(HomeEnvVar, "")

	buildRoot := t.TempDir()
	home, err := GetSVUTHomeWithRoot(buildRoot)
	if err != nil {
		t.Fatalf("GetSVUTHomeWithRoot() error = %v", err)
	}

	if home != buildRoot {
		t.Errorf("GetSVUTHomeWithRoot() = %q, want %q", home, buildRoot)
	}
}

// TestGetSVUTHomeFallsBackToExecutableDir tests the executable directory fallback
func TestGetSVUTHomeFallsBackToExecutableDir(t *testing.T) {
	t.Setenv(HomeEnvVar, "")

	home, err := GetSVUTHomeWithRoot("")
	if err != nil {
		t.Fatalf("GetSVUTHomeWithRoot() error = %v", err)
	}

	exe, err := os.Executable()
	if err != nil {
		t.Skipf("os.Executable unavailable: %v", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	if home != filepath.Dir(exe) {
		t.Errorf("GetSVUTHomeWithRoot() = %q, want %q", home, filepath.Dir(exe))
	}
}
