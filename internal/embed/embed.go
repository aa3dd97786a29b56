// Package embed batches fasta records through an external
// representation extractor. The extractor itself is a black box: it is
// handed a fasta batch and a destination directory and writes one
// representation file per sequence.
package embed

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"protmc/config"
	"protmc/internal/design"

	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// RunCmd takes a cobra command (with its flags) and extracts
// representations for every sequence in the input fasta.
func RunCmd(cmd *cobra.Command, args []string) {
	in, err := cmd.Flags().GetString("in")
	if in == "" || err != nil {
		cmd.Help()
		stderr.Fatalln("\nno input fasta passed.")
	}

	dest, _ := cmd.Flags().GetString("out")
	if dest == "" {
		dest = "representations"
	}

	conf, err := config.New()
	if err != nil {
		stderr.Fatalln(err)
	}

	records, err := design.ReadFasta(in)
	if err != nil {
		stderr.Fatalf("failed to read sequences from %s: %v", in, err)
	}

	start := time.Now()
	if err = Extract(records, dest, conf.Oracle.EmbedBin, conf.Oracle.BatchSize); err != nil {
		stderr.Fatalln(err)
	}

	if conf.Verbose {
		fmt.Printf("embedded %d sequences in %s\n", len(records), time.Since(start))
	}
}

// Extract streams records through the extractor binary in batches of
// batchSize, writing representations into dest. Batches already fully
// present in dest are skipped so interrupted extractions resume.
func Extract(records []design.Fasta, dest, bin string, batchSize int) error {
	if len(records) == 0 {
		return fmt.Errorf("failed to extract: no sequences")
	}
	if batchSize < 1 {
		return fmt.Errorf("failed to extract: batch size must be >= 1")
	}

	if _, err := exec.LookPath(bin); err != nil {
		return fmt.Errorf("failed to find an extractor executable at %s: %v", bin, err)
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("failed to create destination %s: %v", dest, err)
	}

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		if done(batch, dest) {
			continue
		}

		if err := runBatch(batch, dest, bin); err != nil {
			return fmt.Errorf("failed on batch starting at %s: %v", batch[0].ID, err)
		}
	}

	return nil
}

// done reports whether every record of the batch already has a
// representation file in dest.
func done(batch []design.Fasta, dest string) bool {
	for _, record := range batch {
		if _, err := os.Stat(filepath.Join(dest, record.ID+".pt")); err != nil {
			return false
		}
	}

	return true
}

// runBatch writes the batch to a temp fasta and execs the extractor.
func runBatch(batch []design.Fasta, dest, bin string) error {
	f, err := ioutil.TempFile("", "protmc-embed-*.fa")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	for _, record := range batch {
		if _, err = fmt.Fprintf(f, ">%s\n%s\n", record.ID, record.Seq); err != nil {
			return err
		}
	}
	if err = f.Close(); err != nil {
		return err
	}

	if output, err := exec.Command(bin, "-i", f.Name(), "-o", dest).CombinedOutput(); err != nil {
		return fmt.Errorf("%v: %s", err, string(output))
	}

	return nil
}
