package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"eduPlatformReco/business/featurestore"
	"eduPlatformReco/domain"
)

// DatasetRepository loads every dataset named in a manifest from CSV files.
type DatasetRepository struct {
	manifest domain.DatasetManifest
}

func NewDatasetRepository(manifest domain.DatasetManifest) *DatasetRepository {
	return &DatasetRepository{manifest: manifest}
}

func (r *DatasetRepository) Load(ctx context.Context) (featurestore.Datasets, error) {
	var out featurestore.Datasets

	for _, src := range r.manifest.Signals {
		if err := ctx.Err(); err != nil {
			return featurestore.Datasets{}, fmt.Errorf("context error: %w", err)
		}
		ds, err := readFile(src.Path, func(rd io.Reader) (domain.SignalDataset, error) {
			return ReadSignalDataset(rd, src)
		})
		if err != nil {
			return featurestore.Datasets{}, err
		}
		out.Signals = append(out.Signals, ds)
	}

	for _, src := range r.manifest.Platforms {
		if err := ctx.Err(); err != nil {
			return featurestore.Datasets{}, fmt.Errorf("context error: %w", err)
		}
		ds, err := readFile(src.Path, func(rd io.Reader) (domain.PlatformDataset, error) {
			return ReadPlatformDataset(rd, src)
		})
		if err != nil {
			return featurestore.Datasets{}, err
		}
		out.Platforms = append(out.Platforms, ds)
	}

	return out, nil
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ReadSignalDataset reads a signal CSV. The first column is the learner id;
// every other column except src.ExcludeColumns is a feature.
func ReadSignalDataset(r io.Reader, src domain.SignalSource) (domain.SignalDataset, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if err != nil {
		return domain.SignalDataset{}, headerError(src.Name, err)
	}

	excluded := make(map[int]struct{})
	for _, name := range src.ExcludeColumns {
		idx := columnIndex(header, name)
		if idx < 0 {
			return domain.SignalDataset{}, &domain.InvalidInputError{Dataset: src.Name, Reason: fmt.Sprintf("exclude column %q not in header", name)}
		}
		if idx == 0 {
			return domain.SignalDataset{}, &domain.InvalidInputError{Dataset: src.Name, Reason: "cannot exclude the learner id column"}
		}
		excluded[idx] = struct{}{}
	}

	featureCols := make([]int, 0, len(header))
	for i := 1; i < len(header); i++ {
		if _, skip := excluded[i]; !skip {
			featureCols = append(featureCols, i)
		}
	}

	ds := domain.SignalDataset{Name: src.Name}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.SignalDataset{}, rowError(src.Name, err)
		}
		line, _ := cr.FieldPos(0)

		id, err := parseLearnerID(rec[0])
		if err != nil {
			return domain.SignalDataset{}, &domain.InvalidInputError{Dataset: src.Name, Reason: fmt.Sprintf("line %d: %v", line, err)}
		}

		features := make([]float64, 0, len(featureCols))
		for _, c := range featureCols {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[c]), 64)
			if err != nil {
				return domain.SignalDataset{}, &domain.InvalidInputError{
					Dataset:   src.Name,
					LearnerID: id,
					Reason:    fmt.Sprintf("line %d: column %q: not a number", line, header[c]),
				}
			}
			features = append(features, v)
		}

		ds.Records = append(ds.Records, domain.LearnerRecord{LearnerID: id, Features: features})
	}

	return ds, nil
}

// ReadPlatformDataset reads a platform CSV. Learner ids may repeat.
func ReadPlatformDataset(r io.Reader, src domain.PlatformSource) (domain.PlatformDataset, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if err != nil {
		return domain.PlatformDataset{}, headerError(src.Name, err)
	}

	idCol := 0
	if src.IDColumn != "" {
		if idCol = columnIndex(header, src.IDColumn); idCol < 0 {
			return domain.PlatformDataset{}, &domain.InvalidInputError{Dataset: src.Name, Reason: fmt.Sprintf("id column %q not in header", src.IDColumn)}
		}
	}
	attCol := columnIndex(header, src.AttentionColumn)
	if attCol < 0 {
		return domain.PlatformDataset{}, &domain.InvalidInputError{Dataset: src.Name, Reason: fmt.Sprintf("attention column %q not in header", src.AttentionColumn)}
	}

	ds := domain.PlatformDataset{Name: src.Name}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.PlatformDataset{}, rowError(src.Name, err)
		}
		line, _ := cr.FieldPos(0)

		id, err := parseLearnerID(rec[idCol])
		if err != nil {
			return domain.PlatformDataset{}, &domain.InvalidInputError{Dataset: src.Name, Reason: fmt.Sprintf("line %d: %v", line, err)}
		}
		att, err := ParseAttention(rec[attCol])
		if err != nil {
			return domain.PlatformDataset{}, &domain.InvalidInputError{
				Dataset:   src.Name,
				LearnerID: id,
				Reason:    fmt.Sprintf("line %d: %v", line, err),
			}
		}

		ds.Samples = append(ds.Samples, domain.AttentionRecord{LearnerID: id, Attention: att})
	}

	return ds, nil
}

// ParseAttention accepts a number or a boolean-like label
// (true/false, yes/no, attentive/not attentive).
func ParseAttention(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("attention value %q is not finite", raw)
		}
		return v, nil
	}

	switch strings.ToLower(s) {
	case "yes", "y", "attentive":
		return 1, nil
	case "no", "n", "not attentive", "inattentive":
		return 0, nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		if b {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("attention value %q is neither numeric nor boolean", raw)
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	return cr
}

func parseLearnerID(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	id, err := strconv.Atoi(s)
	if err != nil {
		// pandas exports integer columns with NaNs as floats
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("invalid learner id %q", raw)
		}
		id = int(f)
	}
	if id <= 0 {
		return 0, fmt.Errorf("learner id must be positive, got %d", id)
	}
	return id, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

func headerError(dataset string, err error) error {
	if errors.Is(err, io.EOF) {
		return &domain.InvalidInputError{Dataset: dataset, Reason: "empty file"}
	}
	return fmt.Errorf("read header: %w", err)
}

func rowError(dataset string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &domain.InvalidInputError{Dataset: dataset, Reason: pe.Error()}
	}
	return fmt.Errorf("read row: %w", err)
}
