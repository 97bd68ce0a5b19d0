package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/soso/hub"
)

var (
	inputFile  string
	outputFile string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert one metadata record to JSON-LD",
	Long: `Convert one EML, SPASE or ISO 19115 record to a schema.org Dataset graph.

Input defaults to stdin, output defaults to stdout. An output name ending
in .gz is gzip-compressed. The dialect is detected from the document when
--dialect is not given.

Cross-references to other records (spase://... identifiers) are resolved
one hop against the corpus root given by --corpus or $SOSO_CORPUS.
Related DOIs are classified with doi.org and DataCite unless --offline is
set.

Examples:
  # SPASE record with a local corpus
  soso convert -d spase -i ACE/MAG/PT16S.xml --corpus ./spase

  # EML from stdin, pretty output
  cat knb-lter-ntl.1.59.xml | soso convert -d eml --pretty

  # Supply properties the record cannot express
  soso convert -i record.xml --override license=CC-BY-4.0 \
    --override 'provider={"@type":"Organization","name":"EDI"}'

  # Use an override profile
  soso convert -i record.xml -p edi -o record.jsonld.gz`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input XML file (default: stdin)")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	addConversionFlags(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	// Strategies read from a path, so stdin is spooled to a temporary file
	inputName := inputFile
	path := inputFile
	if path == "" || path == "-" {
		inputName = "stdin"
		path, err = spoolStdin()
		if err != nil {
			return err
		}
		defer os.Remove(path)
	}

	dialect, err := resolveDialect(path)
	if err != nil {
		return err
	}

	opts, err := hubOptions(dialect)
	if err != nil {
		return err
	}

	res, err := hub.Convert(cmd.Context(), path, dialect, opts)
	if err != nil {
		return fmt.Errorf("converting %s: %w", inputName, err)
	}
	printDiagnostics(inputName, res.Diagnostics)

	output, err := openOutput(outputFile)
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

	slog.Debug("wrote graph", "input", inputName, "dialect", dialect, "bytes", len(res.JSON))
	return nil
}

func spoolStdin() (path string, err error) {
	f, err := os.CreateTemp("", "soso-stdin-*.xml")
	if err != nil {
		return "", fmt.Errorf("creating temporary input: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing temporary input: %w", cerr)
		}
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	if _, err := io.Copy(f, os.Stdin); err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return f.Name(), nil
}
