package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleManifest = `
neighbors: 3
signals:
  - name: youtube
    path: data/youtube_dataset.csv
    exclude_columns: [Attentive]
  - name: nptel
    path: /abs/nptel_dataset.csv
platforms:
  - name: Udemy
    path: data/udemy_dataset.csv
    id_column: User_id
  - name: Coursera
    path: data/coursera_dataset.csv
    attention_column: Attentive
`

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datasets.yaml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	if m.Neighbors != 3 {
		t.Errorf("Neighbors = %d, want 3", m.Neighbors)
	}
	if got, want := m.Signals[0].Path, filepath.Join(dir, "data", "youtube_dataset.csv"); got != want {
		t.Errorf("relative path = %q, want %q", got, want)
	}
	if m.Signals[1].Path != "/abs/nptel_dataset.csv" {
		t.Errorf("absolute path rewritten to %q", m.Signals[1].Path)
	}
	if m.Platforms[0].AttentionColumn != "Attention" {
		t.Errorf("default attention column = %q", m.Platforms[0].AttentionColumn)
	}
	if m.Platforms[1].AttentionColumn != "Attentive" {
		t.Errorf("attention column = %q, want Attentive", m.Platforms[1].AttentionColumn)
	}
	if names := m.PlatformNames(); names[0] != "Udemy" || names[1] != "Coursera" {
		t.Errorf("PlatformNames() = %v", names)
	}
	if err := RequirePaths(m); err != nil {
		t.Errorf("RequirePaths: %v", err)
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "one signal dataset",
			yaml: `
signals:
  - name: youtube
platforms:
  - name: Udemy
  - name: Coursera
`,
			wantErr: "validate",
		},
		{
			name: "one platform",
			yaml: `
signals:
  - name: youtube
  - name: nptel
platforms:
  - name: Udemy
`,
			wantErr: "validate",
		},
		{
			name: "missing name",
			yaml: `
signals:
  - name: youtube
  - path: x.csv
platforms:
  - name: Udemy
  - name: Coursera
`,
			wantErr: "validate",
		},
		{
			name: "duplicate names",
			yaml: `
signals:
  - name: youtube
  - name: nptel
platforms:
  - name: youtube
  - name: Coursera
`,
			wantErr: "duplicate",
		},
		{
			name: "unknown key",
			yaml: `
signal:
  - name: youtube
`,
			wantErr: "decode",
		},
		{
			name: "negative neighbors",
			yaml: `
neighbors: -1
signals:
  - name: youtube
  - name: nptel
platforms:
  - name: Udemy
  - name: Coursera
`,
			wantErr: "validate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseManifest() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestRequirePaths(t *testing.T) {
	m, err := ParseManifest([]byte(`
signals:
  - name: youtube
    path: a.csv
  - name: nptel
    path: b.csv
platforms:
  - name: Udemy
  - name: Coursera
    path: d.csv
`))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if err := RequirePaths(m); err == nil || !strings.Contains(err.Error(), "Udemy") {
		t.Errorf("RequirePaths() error = %v, want Udemy missing path", err)
	}
}
