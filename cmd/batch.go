package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lehigh-university-libraries/soso/hub"
)

var (
	batchOutputDir string
	batchWorkers   int
	batchGzip      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <pattern>...",
	Short: "Convert many records matched by glob patterns",
	Long: `Convert every record matched by the glob patterns. Patterns support **
for recursive matching.

Each record is converted independently on a bounded pool of workers. The
graph is written next to the record with a .jsonld extension, or under
--output-dir mirroring the directory layout below the pattern's base.
A record that fails to convert is reported and the batch continues.

Examples:
  soso batch -d spase --corpus ./spase './spase/NASA/**/*.xml' -o out/
  soso batch 'eml/*.xml' --workers 4 --gzip -p edi`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutputDir, "output-dir", "o", "", "Output directory (default: next to each record)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", runtime.NumCPU(), "Number of concurrent conversions")
	batchCmd.Flags().BoolVar(&batchGzip, "gzip", false, "Gzip-compress each output file")
	addConversionFlags(batchCmd)
}

type batchJob struct {
	input  string
	output string
}

func runBatch(cmd *cobra.Command, args []string) error {
	jobs, err := batchJobs(args)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no records match %s", strings.Join(args, ", "))
	}

	workers := batchWorkers
	if workers < 1 {
		workers = 1
	}
	slog.Info("converting records", "count", len(jobs), "workers", workers)

	var failed atomic.Int64
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for _, job := range jobs {
		g.Go(func() error {
			if err := convertOne(cmd, job); err != nil {
				failed.Add(1)
				slog.Error("conversion failed", "path", job.input, "err", err)
			}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d records failed", n, len(jobs))
	}
	fmt.Fprintf(os.Stderr, "Converted %d records\n", len(jobs))
	return nil
}

// batchJobs expands the patterns into input and output paths. A record
// matched by more than one pattern is converted once.
func batchJobs(patterns []string) ([]batchJob, error) {
	seen := make(map[string]bool)
	var jobs []batchJob
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			jobs = append(jobs, batchJob{input: match, output: outputPath(base, match)})
		}
	}
	return jobs, nil
}

func outputPath(base, input string) string {
	name := strings.TrimSuffix(input, filepath.Ext(input)) + ".jsonld"
	if batchOutputDir != "" {
		rel, err := filepath.Rel(filepath.FromSlash(base), name)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = filepath.Base(name)
		}
		name = filepath.Join(batchOutputDir, rel)
	}
	if batchGzip {
		name += ".gz"
	}
	return name
}

func convertOne(cmd *cobra.Command, job batchJob) (err error) {
	dialect, err := resolveDialect(job.input)
	if err != nil {
		return err
	}
	opts, err := hubOptions(dialect)
	if err != nil {
		return err
	}

	res, err := hub.Convert(cmd.Context(), job.input, dialect, opts)
	if err != nil {
		return err
	}
	printDiagnostics(job.input, res.Diagnostics)

	if err := os.MkdirAll(filepath.Dir(job.output), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	output, err := openOutput(job.output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := output.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	if _, err := output.Write(res.JSON); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
