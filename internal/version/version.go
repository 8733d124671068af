// Package version resolves the svut release tag shown in run banners.
package version

import (
	"context"
	"os/exec"
	"strings"
)

// Placeholder is reported when no tag can be found.
const Placeholder = "v0.0.0"

// OutputFunc runs a program in dir and returns its standard output.
type OutputFunc func(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

// Warner receives a message when the lookup falls back to Placeholder.
type Warner interface {
	LogWarn(message string)
}

// Resolver looks up the latest git tag of the svut install directory.
// Lookup failures are never errors: the tag degrades to Placeholder.
type Resolver struct {
	dir    string
	output OutputFunc
	warner Warner

	resolved bool
	tag      string
}

// NewResolver creates a Resolver for the checkout at dir.
// A nil output runs git through os/exec; a nil warner stays silent.
func NewResolver(dir string, output OutputFunc, warner Warner) *Resolver {
	if output == nil {
		output = execOutput
	}
	return &Resolver{dir: dir, output: output, warner: warner}
}

// Tag returns the most recent tag reachable from HEAD, e.g. "v1.6.0".
// The first lookup is cached for the life of the Resolver.
func (r *Resolver) Tag(ctx context.Context) string {
	if r.resolved {
		return r.tag
	}

	r.tag = Placeholder
	out, err := r.output(ctx, r.dir, "git", "describe", "--tags", "--abbrev=0")
	if tag := strings.TrimSpace(string(out)); err == nil && tag != "" {
		r.tag = tag
	} else if r.warner != nil {
		r.warner.LogWarn("Can't get last git tag. Will return " + Placeholder)
	}

	r.resolved = true
	return r.tag
}

func execOutput(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}
