package executor

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/harrison/svut/internal/filelock"
)

// HeaderFile is the SVUT macro header every testbench includes.
const HeaderFile = "svut_h.sv"

// HeaderSyncer keeps the working directory copy of the macro header current.
type HeaderSyncer interface {
	Sync() (copied bool, err error)
}

// HeaderSync copies svut_h.sv from the install directory into the working
// directory when the working copy is missing or differs from the source.
type HeaderSync struct {
	Source string
	Dest   string
}

// NewHeaderSync creates a HeaderSync between home and workDir.
func NewHeaderSync(home, workDir string) *HeaderSync {
	return &HeaderSync{
		Source: filepath.Join(home, HeaderFile),
		Dest:   filepath.Join(workDir, HeaderFile),
	}
}

// Sync copies the header if needed and reports whether a copy happened.
// Copying is serialized with an flock keyed by the destination path so two
// svut processes sharing a directory never interleave writes.
func (h *HeaderSync) Sync() (bool, error) {
	src, err := os.ReadFile(h.Source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("%w: %s", ErrHeaderNotFound, h.Source)
		}
		return false, fmt.Errorf("read %s: %w", h.Source, err)
	}

	if h.upToDate(src) {
		return false, nil
	}

	copied := false
	err = filelock.WithLock(h.Dest, func() error {
		// Another process may have copied it while we waited
		if h.upToDate(src) {
			return nil
		}
		if err := filelock.AtomicWrite(h.Dest, src, 0644); err != nil {
			return err
		}
		copied = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("copy %s: %w", HeaderFile, err)
	}

	return copied, nil
}

func (h *HeaderSync) upToDate(src []byte) bool {
	current, err := os.ReadFile(h.Dest)
	return err == nil && bytes.Equal(current, src)
}
