// Package validate checks a serialized Dataset graph against SHACL shapes
// with an external engine.
//
// The engine is the pyshacl command line tool unless configured otherwise.
// Because the engine dereferences the schema.org context over the network,
// a Validator first probes that URL; when it cannot be reached the result
// is ConformsUnknown instead of a false negative.
package validate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/soso/resolve"
)

// DefaultEngine is the SHACL engine executable.
const DefaultEngine = "pyshacl"

// DefaultProbeURL is dereferenced before every validation.
const DefaultProbeURL = "https://schema.org/"

// DefaultTimeout bounds the probe and the engine run together.
const DefaultTimeout = 2 * time.Minute

// Conformance is the tri-state outcome of a validation.
type Conformance int

const (
	// ConformsUnknown means the graph could not be checked.
	ConformsUnknown Conformance = iota
	Conforms
	DoesNotConform
)

func (c Conformance) String() string {
	switch c {
	case Conforms:
		return "true"
	case DoesNotConform:
		return "false"
	default:
		return "unknown"
	}
}

// Result reports one validation.
type Result struct {
	// DataGraph is the validated graph file.
	DataGraph string

	// ShapesGraph is the name or path of the shapes used.
	ShapesGraph string

	Conforms Conformance

	// Report is the engine's text report, or the reason the result is
	// unknown.
	Report string
}

// Validator runs the SHACL engine.
type Validator struct {
	// Engine is the executable to run. Empty means DefaultEngine.
	Engine string

	// ProbeURL is checked before running the engine. Empty means
	// DefaultProbeURL.
	ProbeURL string

	// Client performs the probe. Nil uses a client with the resolve
	// package's default timeout.
	Client *resolve.Client

	// Timeout bounds the whole validation. Zero means DefaultTimeout.
	Timeout time.Duration
}

var conformsRegex = regexp.MustCompile(`(?m)^Conforms:\s*(True|False)\s*$`)

// Validate checks the JSON-LD graph at graphPath against shapes, which is
// resolved with ResolveShapes.
func Validate(ctx context.Context, graphPath, shapes string) (*Result, error) {
	return (&Validator{}).Validate(ctx, graphPath, shapes)
}

// Validate checks the JSON-LD graph at graphPath against shapes. An
// unreachable network is logged and yields ConformsUnknown, never an error.
// A missing shape graph or engine is an error.
func (v *Validator) Validate(ctx context.Context, graphPath, shapes string) (*Result, error) {
	resolved, err := ResolveShapes(shapes)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resolved.Close(); cerr != nil {
			slog.Debug("removing temporary shapes", "path", resolved.Path, "err", cerr)
		}
	}()

	result := &Result{DataGraph: graphPath, ShapesGraph: shapes}
	if shapes == "" {
		result.ShapesGraph = DefaultShapes
	}

	timeout := v.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := v.probe(ctx); err != nil {
		slog.Warn("network unavailable, validation skipped", "path", graphPath, "err", err)
		result.Report = err.Error()
		return result, nil
	}

	engine := v.Engine
	if engine == "" {
		engine = DefaultEngine
	}
	cmd := exec.CommandContext(ctx, engine,
		"-s", resolved.Path,
		"-sf", "turtle",
		"-df", "json-ld",
		"-i", "none",
		graphPath,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running SHACL engine", "engine", engine, "shapes", resolved.Path, "graph", graphPath)
	runErr := cmd.Run()
	result.Report = strings.TrimSpace(stdout.String())

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("running %s: %w", engine, runErr)
		}
		exitCode = exitErr.ExitCode()
	}

	switch {
	case conformsRegex.MatchString(result.Report):
		if conformsRegex.FindStringSubmatch(result.Report)[1] == "True" {
			result.Conforms = Conforms
		} else {
			result.Conforms = DoesNotConform
		}
	case exitCode == 0:
		result.Conforms = Conforms
	case exitCode == 1:
		result.Conforms = DoesNotConform
	default:
		return nil, fmt.Errorf("%s exited with status %d: %s", engine, exitCode, strings.TrimSpace(stderr.String()))
	}

	if result.Conforms == DoesNotConform {
		slog.Warn("graph does not conform", "path", graphPath, "shapes", result.ShapesGraph)
	}
	return result, nil
}

func (v *Validator) probe(ctx context.Context) error {
	client := v.Client
	if client == nil {
		client = resolve.NewClient(0)
	}
	url := v.ProbeURL
	if url == "" {
		url = DefaultProbeURL
	}
	return client.Probe(ctx, url)
}
