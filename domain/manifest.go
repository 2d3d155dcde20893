package domain

// DatasetManifest describes where the datasets live and how to read them.
// Platform order is the tie-break precedence used by the scorer.
type DatasetManifest struct {
	Neighbors int              `yaml:"neighbors" json:"neighbors" validate:"omitempty,min=1"`
	Signals   []SignalSource   `yaml:"signals" json:"signals" validate:"len=2,dive"`
	Platforms []PlatformSource `yaml:"platforms" json:"platforms" validate:"min=2,dive"`
}

type SignalSource struct {
	Name           string   `yaml:"name" json:"name" validate:"required"`
	Path           string   `yaml:"path" json:"path"`
	ExcludeColumns []string `yaml:"exclude_columns" json:"exclude_columns"`
}

type PlatformSource struct {
	Name            string `yaml:"name" json:"name" validate:"required"`
	Path            string `yaml:"path" json:"path"`
	IDColumn        string `yaml:"id_column" json:"id_column"`
	AttentionColumn string `yaml:"attention_column" json:"attention_column"`
}

func (m DatasetManifest) PlatformNames() []string {
	names := make([]string, 0, len(m.Platforms))
	for _, p := range m.Platforms {
		names = append(names, p.Name)
	}
	return names
}
