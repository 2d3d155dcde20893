package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eduPlatformReco/pkg/utils"
)

var fixtures = map[string]string{
	"datasets.yaml": `
neighbors: 2
signals:
  - name: youtube
    path: youtube.csv
    exclude_columns: [Attentive]
  - name: nptel
    path: nptel.csv
    exclude_columns: [Attentive]
platforms:
  - name: Udemy
    path: udemy.csv
  - name: Coursera
    path: coursera.csv
`,
	"youtube.csv":  "User_id,Delta,Theta,Attentive\n1,1,0,yes\n2,1,0.1,yes\n3,1,0.2,no\n4,0,1,no\n",
	"nptel.csv":    "User_id,Delta,Theta,Attentive\n1,1,0,yes\n2,1,0.1,no\n3,0,1,no\n4,1,0.2,yes\n",
	"udemy.csv":    "User_id,Attention\n2,0.2\n3,0.4\n4,0.3\n",
	"coursera.csv": "User_id,Attention\n2,0.9\n3,0.7\n4,0.8\n",
}

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range fixtures {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(dir, "datasets.yaml")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	flagJSON = false
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRecommendCommand(t *testing.T) {
	manifest := writeFixtures(t)

	out, err := run(t, "recommend", "--manifest", manifest, "--learner", "1")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if !strings.Contains(out, "Recommended platform for learner 1: Coursera") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "Similar learners: 2, 3, 4") {
		t.Errorf("missing group in output:\n%s", out)
	}
}

func TestRecommendCommand_OutOfRange(t *testing.T) {
	manifest := writeFixtures(t)

	_, err := run(t, "recommend", "--manifest", manifest, "--learner", "5")
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("expected out of range error, got %v", err)
	}
}

func TestRangeCommand(t *testing.T) {
	manifest := writeFixtures(t)

	out, err := run(t, "range", "--manifest", manifest, "--json")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if !strings.Contains(out, `"min": 1`) || !strings.Contains(out, `"max": 4`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSimilarCommand(t *testing.T) {
	manifest := writeFixtures(t)

	out, err := run(t, "similar", "--manifest", manifest, "--learner", "1", "--k", "1")
	if err != nil {
		t.Fatalf("similar: %v", err)
	}
	if !strings.Contains(out, "Group: 2") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSimilarCommand_InvalidK(t *testing.T) {
	manifest := writeFixtures(t)

	for _, k := range []string{"-3", "51"} {
		_, err := run(t, "similar", "--manifest", manifest, "--learner", "1", "--k="+k)
		if err == nil || !strings.Contains(err.Error(), "--k must be between") {
			t.Errorf("--k=%s: error = %v, want range error", k, err)
		}
	}
}

func TestMatrixCommand(t *testing.T) {
	manifest := writeFixtures(t)

	out, err := run(t, "matrix", "--manifest", manifest, "--dataset", "nptel")
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	if !strings.Contains(out, "1.000") {
		t.Errorf("diagonal missing from output:\n%s", out)
	}

	if _, err := run(t, "matrix", "--manifest", manifest, "--dataset", "tiktok"); err == nil {
		t.Error("expected error for unknown dataset")
	}
}

func TestTokenCommand(t *testing.T) {
	out, err := run(t, "token", "--secret", "s3cret", "--subject", "42")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	claims, err := utils.ParseJWT(strings.TrimSpace(out), "s3cret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.Role != "ADMIN" || claims.UserID != "42" {
		t.Errorf("unexpected claims %+v", claims)
	}
}
