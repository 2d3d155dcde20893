package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"eduPlatformReco/domain"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const defaultAttentionColumn = "Attention"

// LoadManifest reads a dataset manifest. Relative dataset paths are resolved
// against the manifest's directory.
func LoadManifest(path string) (domain.DatasetManifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.DatasetManifest{}, fmt.Errorf("read manifest: %w", err)
	}

	m, err := ParseManifest(raw)
	if err != nil {
		return domain.DatasetManifest{}, fmt.Errorf("manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range m.Signals {
		m.Signals[i].Path = resolve(base, m.Signals[i].Path)
	}
	for i := range m.Platforms {
		m.Platforms[i].Path = resolve(base, m.Platforms[i].Path)
	}

	return m, nil
}

// ParseManifest decodes and validates manifest YAML. Unknown keys are rejected.
func ParseManifest(raw []byte) (domain.DatasetManifest, error) {
	var m domain.DatasetManifest

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return domain.DatasetManifest{}, fmt.Errorf("decode: %w", err)
	}

	if err := validator.New().Struct(&m); err != nil {
		return domain.DatasetManifest{}, fmt.Errorf("validate: %w", err)
	}

	seen := make(map[string]struct{})
	for _, name := range append(signalNames(m), m.PlatformNames()...) {
		if _, dup := seen[name]; dup {
			return domain.DatasetManifest{}, fmt.Errorf("duplicate dataset name %q", name)
		}
		seen[name] = struct{}{}
	}

	for i := range m.Platforms {
		if m.Platforms[i].AttentionColumn == "" {
			m.Platforms[i].AttentionColumn = defaultAttentionColumn
		}
	}

	return m, nil
}

// RequirePaths checks that every dataset has a file path, as the CSV source needs.
func RequirePaths(m domain.DatasetManifest) error {
	for _, s := range m.Signals {
		if s.Path == "" {
			return errors.New("signal dataset " + s.Name + " has no path")
		}
	}
	for _, p := range m.Platforms {
		if p.Path == "" {
			return errors.New("platform dataset " + p.Name + " has no path")
		}
	}
	return nil
}

func signalNames(m domain.DatasetManifest) []string {
	names := make([]string, 0, len(m.Signals))
	for _, s := range m.Signals {
		names = append(names, s.Name)
	}
	return names
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
