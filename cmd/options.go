package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/pgzip"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/soso/diag"
	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/hub"
	"github.com/lehigh-university-libraries/soso/profile"
	"github.com/lehigh-university-libraries/soso/resolve"
)

// corpusEnv names the default corpus root.
const corpusEnv = "SOSO_CORPUS"

// Conversion flags shared by convert and batch.
var (
	dialectName  string
	corpusRoot   string
	overrideArgs []string
	profileName  string
	profileFile  string
	pretty       bool
	timeout      time.Duration
	offline      bool
)

func addConversionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&dialectName, "dialect", "d", "", "Source dialect: eml, spase, iso19115 (default: detect)")
	cmd.Flags().StringVar(&corpusRoot, "corpus", "", "Root of the local record corpus (default: $"+corpusEnv+")")
	cmd.Flags().StringArrayVar(&overrideArgs, "override", nil, "Override a property, key=value (repeatable; JSON values allowed)")
	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "Override profile name")
	cmd.Flags().StringVar(&profileFile, "profile-file", "", "Override profile YAML file")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON-LD output")
	cmd.Flags().DurationVar(&timeout, "timeout", format.DefaultTimeout, "Timeout for each remote lookup")
	cmd.Flags().BoolVar(&offline, "offline", false, "Never contact remote services")
}

// parseOverrides turns key=value arguments into overrides. Values that
// parse as JSON (objects, arrays, numbers, booleans, quoted strings) keep
// their JSON type; anything else is a string.
func parseOverrides(args []string) (map[string]any, error) {
	overrides := make(map[string]any, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid override %q: expected key=value", arg)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		overrides[key] = v
	}
	return overrides, nil
}

// loadProfile returns the profile named by the flags, or nil.
func loadProfile() (*profile.Profile, error) {
	switch {
	case profileFile != "":
		return profile.LoadFile(profileFile)
	case profileName != "":
		return profile.Load(profileName)
	}
	return nil, nil
}

// resolveDialect parses the --dialect flag, detecting the dialect from the
// file content when the flag is empty.
func resolveDialect(path string) (format.Dialect, error) {
	if dialectName != "" {
		return format.ParseDialect(dialectName)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	peek, err := bufio.NewReader(f).Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return 0, fmt.Errorf("reading input file: %w", err)
	}
	detected, err := format.DetectFormat(path, peek)
	if err != nil {
		return 0, err
	}
	return detected.Dialect(), nil
}

// hubOptions builds the conversion options for dialect d from the flags.
func hubOptions(d format.Dialect) (*hub.Options, error) {
	overrides, err := parseOverrides(overrideArgs)
	if err != nil {
		return nil, err
	}

	p, err := loadProfile()
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	if p != nil {
		if !p.AppliesTo(d) {
			return nil, fmt.Errorf("profile %q is for %s records, not %s", p.Name, p.Dialect, d)
		}
		overrides = p.Merge(overrides)
	}

	opts := &hub.Options{
		Overrides:  overrides,
		CorpusRoot: corpusRoot,
		Pretty:     pretty,
	}
	if opts.CorpusRoot == "" {
		opts.CorpusRoot = os.Getenv(corpusEnv)
	}
	if !offline {
		opts.Client = resolve.NewClient(timeout)
	}
	return opts, nil
}

// openOutput opens the output destination. An empty path or "-" is
// stdout; a name ending in ".gz" is gzip-compressed.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	return &gzipFile{Writer: pgzip.NewWriter(f), f: f}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// gzipFile closes the compressor before the file.
type gzipFile struct {
	*pgzip.Writer
	f *os.File
}

func (g *gzipFile) Close() error {
	if err := g.Writer.Close(); err != nil {
		g.f.Close()
		return err
	}
	return g.f.Close()
}

// printDiagnostics writes the soft failures of a conversion to stderr.
func printDiagnostics(source string, entries []diag.Entry) {
	for _, e := range entries {
		fmt.Fprintf(os.Stderr, "%s: warning: %s\n", source, e)
	}
}
