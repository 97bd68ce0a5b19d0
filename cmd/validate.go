package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/soso/hub"
	"github.com/lehigh-university-libraries/soso/validate"
)

var (
	validateShapes  string
	validateEngine  string
	validateTimeout time.Duration
	validateVerbose bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <graph>",
	Short: "Validate a Dataset graph against SHACL shapes",
	Long: `Validate a JSON-LD Dataset graph against the Science on Schema.org SHACL
shapes with an external SHACL engine (pyshacl by default).

An XML record is converted first, using the conversion flags. The shapes
default to the bundled soso_common_v1.2.3.ttl; --shapes accepts a file path
or the name of a bundled shape graph.

When schema.org cannot be reached, or with --offline, the result is
"unknown" and the command succeeds with a warning. A graph that does not
conform exits with status 1.

Examples:
  soso validate record.jsonld
  soso validate record.jsonld --shapes ./my_shapes.ttl -v
  soso validate -d spase record.xml --corpus ./spase`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateShapes, "shapes", "s", "", "SHACL shapes file or bundled name (default: "+validate.DefaultShapes+")")
	validateCmd.Flags().StringVar(&validateEngine, "engine", validate.DefaultEngine, "SHACL engine executable")
	validateCmd.Flags().DurationVar(&validateTimeout, "validate-timeout", validate.DefaultTimeout, "Timeout for the whole validation")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Print the full validation report")
	addConversionFlags(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	graphPath := args[0]

	if strings.EqualFold(filepath.Ext(graphPath), ".xml") {
		graphPath, err = convertForValidation(cmd, graphPath)
		if err != nil {
			return err
		}
		defer os.Remove(graphPath)
	}

	if offline {
		slog.Warn("offline, skipping SHACL validation", "path", args[0])
		fmt.Printf("%s: conforms: %s\n", args[0], validate.ConformsUnknown)
		return nil
	}

	v := &validate.Validator{
		Engine:  validateEngine,
		Timeout: validateTimeout,
	}
	res, err := v.Validate(cmd.Context(), graphPath, validateShapes)
	if err != nil {
		return fmt.Errorf("validating %s: %w", args[0], err)
	}

	fmt.Printf("%s: conforms: %s (shapes: %s)\n", args[0], res.Conforms, res.ShapesGraph)
	if validateVerbose || res.Conforms == validate.ConformsUnknown {
		if res.Report != "" {
			fmt.Println(res.Report)
		}
	}

	if res.Conforms == validate.DoesNotConform {
		return fmt.Errorf("%s does not conform", args[0])
	}
	return nil
}

// convertForValidation writes the graph of an XML record to a temporary
// file.
func convertForValidation(cmd *cobra.Command, path string) (string, error) {
	dialect, err := resolveDialect(path)
	if err != nil {
		return "", err
	}
	opts, err := hubOptions(dialect)
	if err != nil {
		return "", err
	}
	res, err := hub.Convert(cmd.Context(), path, dialect, opts)
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", path, err)
	}
	printDiagnostics(path, res.Diagnostics)

	f, err := os.CreateTemp("", "soso-graph-*.jsonld")
	if err != nil {
		return "", fmt.Errorf("creating temporary graph: %w", err)
	}
	if _, err := f.Write(res.JSON); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing temporary graph: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing temporary graph: %w", err)
	}
	return f.Name(), nil
}
