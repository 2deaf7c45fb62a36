// Package loader reads an experiment document from an in-memory mapping or
// from a serialized file, producing the plain node tree the builder walks:
// mappings are map[string]any, sequences are []any, everything else is a
// scalar. Loading is the only file-format surface of the system.
package loader

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vk/expconf/internal/ctxlog"
)

// ErrUnsupportedFormat reports a document source the loader cannot read,
// either an unrecognized file extension or an unsupported source type.
var ErrUnsupportedFormat = errors.New("unsupported experiment document format")

// Load turns a document source into a node tree. The source is either an
// in-memory map[string]any, used as-is after a shallow copy, or a path to a
// .json, .yaml, .yml, .toml or .hcl file. A leading "~/" in a path is
// expanded against the user's home directory.
func Load(ctx context.Context, source any) (map[string]any, error) {
	switch src := source.(type) {
	case map[string]any:
		return maps.Clone(src), nil
	case string:
		return loadFile(ctx, src)
	default:
		return nil, fmt.Errorf("%w: source type %T", ErrUnsupportedFormat, source)
	}
}

func loadFile(ctx context.Context, path string) (map[string]any, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading experiment document.", "path", path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".hcl" {
		return loadHCLFile(path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment document %s: %w", path, err)
	}

	document := make(map[string]any)
	switch ext {
	case ".json", ".yaml", ".yml":
		// YAML is a superset of JSON, so one decoder covers all three.
		if err := yaml.Unmarshal(raw, &document); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(raw, &document); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	logger.Debug("Experiment document loaded.", "path", path, "keys", len(document))
	return document, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
