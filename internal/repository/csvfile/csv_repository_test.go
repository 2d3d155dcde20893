package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eduPlatformReco/domain"
)

const youtubeCSV = `User_id,Delta,Theta,Low_Alpha,Attention,Attentive
12,100,20,3,55,Yes
13,90,25,4,40,No
14,80,30,5,61,Yes
`

func TestReadSignalDataset(t *testing.T) {
	ds, err := ReadSignalDataset(strings.NewReader(youtubeCSV), domain.SignalSource{
		Name:           "youtube",
		ExcludeColumns: []string{"attentive"},
	})
	if err != nil {
		t.Fatalf("ReadSignalDataset: %v", err)
	}

	if ds.Name != "youtube" || len(ds.Records) != 3 {
		t.Fatalf("got %s with %d records", ds.Name, len(ds.Records))
	}
	first := ds.Records[0]
	if first.LearnerID != 12 {
		t.Errorf("LearnerID = %d, want 12", first.LearnerID)
	}
	want := []float64{100, 20, 3, 55}
	if len(first.Features) != len(want) {
		t.Fatalf("Features = %v, want %v", first.Features, want)
	}
	for i := range want {
		if first.Features[i] != want[i] {
			t.Errorf("Features = %v, want %v", first.Features, want)
			break
		}
	}
}

func TestReadSignalDataset_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		exclude []string
		wantErr string
	}{
		{"empty file", "", nil, "empty file"},
		{"text feature", "id,a\n1,abc\n", nil, "not a number"},
		{"label not excluded", youtubeCSV, nil, "Attentive"},
		{"unknown exclude column", youtubeCSV, []string{"Beta"}, "not in header"},
		{"bad id", "id,a\nx,1\n", nil, "invalid learner id"},
		{"zero id", "id,a\n0,1\n", nil, "positive"},
		{"ragged row", "id,a,b\n1,2\n", nil, "wrong number of fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSignalDataset(strings.NewReader(tt.csv), domain.SignalSource{Name: "s", ExcludeColumns: tt.exclude})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
			if !domain.IsInvalidInput(err) {
				t.Errorf("error %v is not InvalidInputError", err)
			}
		})
	}
}

func TestReadPlatformDataset(t *testing.T) {
	csv := `Sample,User_id,Attention,Attentive
1,12,55,Yes
2,12,45,No
3,20,70,Yes
`
	ds, err := ReadPlatformDataset(strings.NewReader(csv), domain.PlatformSource{
		Name:            "Udemy",
		IDColumn:        "User_id",
		AttentionColumn: "Attention",
	})
	if err != nil {
		t.Fatalf("ReadPlatformDataset: %v", err)
	}
	if len(ds.Samples) != 3 {
		t.Fatalf("len(Samples) = %d, want 3", len(ds.Samples))
	}
	if ds.Samples[1] != (domain.AttentionRecord{LearnerID: 12, Attention: 45}) {
		t.Errorf("Samples[1] = %+v", ds.Samples[1])
	}

	labels, err := ReadPlatformDataset(strings.NewReader(csv), domain.PlatformSource{
		Name:            "Udemy",
		IDColumn:        "user_id",
		AttentionColumn: "Attentive",
	})
	if err != nil {
		t.Fatalf("ReadPlatformDataset(labels): %v", err)
	}
	if labels.Samples[0].Attention != 1 || labels.Samples[1].Attention != 0 {
		t.Errorf("label samples = %+v", labels.Samples)
	}
}

func TestReadPlatformDataset_MissingColumns(t *testing.T) {
	csv := "User_id,Attention\n1,0.5\n"
	if _, err := ReadPlatformDataset(strings.NewReader(csv), domain.PlatformSource{Name: "p", AttentionColumn: "Focus"}); !domain.IsInvalidInput(err) {
		t.Errorf("missing attention column error = %v", err)
	}
	if _, err := ReadPlatformDataset(strings.NewReader(csv), domain.PlatformSource{Name: "p", IDColumn: "Learner", AttentionColumn: "Attention"}); !domain.IsInvalidInput(err) {
		t.Errorf("missing id column error = %v", err)
	}
}

func TestParseAttention(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0.75", 0.75, false},
		{" 61 ", 61, false},
		{"Yes", 1, false},
		{"no", 0, false},
		{"true", 1, false},
		{"FALSE", 0, false},
		{"Not Attentive", 0, false},
		{"maybe", 0, true},
		{"NaN", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAttention(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAttention(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseAttention(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDatasetRepository_Load(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	manifest := domain.DatasetManifest{
		Signals: []domain.SignalSource{
			{Name: "youtube", Path: write("yt.csv", youtubeCSV), ExcludeColumns: []string{"Attentive"}},
			{Name: "nptel", Path: write("np.csv", "User_id,a,b\n12,1,2\n13,2,1\n14,1,1\n")},
		},
		Platforms: []domain.PlatformSource{
			{Name: "Udemy", Path: write("ud.csv", "User_id,Attention\n12,0.4\n"), AttentionColumn: "Attention"},
			{Name: "Coursera", Path: write("co.csv", "User_id,Attention\n13,0.9\n14,0.1\n"), AttentionColumn: "Attention"},
		},
	}

	ds, err := NewDatasetRepository(manifest).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Signals) != 2 || len(ds.Platforms) != 2 {
		t.Fatalf("got %d signals, %d platforms", len(ds.Signals), len(ds.Platforms))
	}
	if ds.Platforms[0].Name != "Udemy" || ds.Platforms[1].Name != "Coursera" {
		t.Errorf("platform order = %s, %s", ds.Platforms[0].Name, ds.Platforms[1].Name)
	}
	if len(ds.Platforms[1].Samples) != 2 {
		t.Errorf("Coursera samples = %+v", ds.Platforms[1].Samples)
	}

	manifest.Platforms[0].Path = filepath.Join(dir, "missing.csv")
	if _, err := NewDatasetRepository(manifest).Load(context.Background()); err == nil {
		t.Error("Load succeeded with a missing file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewDatasetRepository(manifest).Load(ctx); err == nil {
		t.Error("Load succeeded with a cancelled context")
	}
}
