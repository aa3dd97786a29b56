package embed

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"protmc/internal/design"
)

func Test_Extract_validation(t *testing.T) {
	dest := t.TempDir()
	records := []design.Fasta{{ID: "a", Seq: "ACDE"}}

	tests := []struct {
		name      string
		records   []design.Fasta
		bin       string
		batchSize int
	}{
		{"no sequences", nil, "true", 10},
		{"zero batch size", records, "true", 0},
		{"missing extractor", records, "protmc-no-such-extractor", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Extract(tt.records, dest, tt.bin, tt.batchSize); err == nil {
				t.Error("Extract() expected an error")
			}
		})
	}
}

// batches whose representations already exist are skipped entirely, so
// a finished extraction is a no-op even without a working extractor.
func Test_Extract_resume(t *testing.T) {
	dest := t.TempDir()
	records := []design.Fasta{
		{ID: "a", Seq: "ACDE"},
		{ID: "b", Seq: "FGHI"},
	}

	for _, record := range records {
		path := filepath.Join(dest, record.ID+".pt")
		if err := ioutil.WriteFile(path, []byte("representation"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	// "false" exits non-zero: it would fail any batch actually run
	if err := Extract(records, dest, "false", 10); err != nil {
		t.Errorf("Extract() error = %v, want completed batches skipped", err)
	}
}

func Test_done(t *testing.T) {
	dest := t.TempDir()
	batch := []design.Fasta{{ID: "a", Seq: "ACDE"}}

	if done(batch, dest) {
		t.Error("done() = true before any representation exists")
	}

	if err := ioutil.WriteFile(filepath.Join(dest, "a.pt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if !done(batch, dest) {
		t.Error("done() = false after the representation was written")
	}
}
