package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/clusterpanel/pkg/pipeline"
)

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes one file per format. A single format with an
// explicit output goes exactly there; otherwise files are named
// <base><extension>.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output != "" {
		format := p.formats[0]
		path := p.output
		if path == "-" {
			path = ""
		}
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return err
		}
		if path != "" {
			printSuccess("Rendered %s", format)
			printFile(path)
		}
		return nil
	}

	base := basePath(p.output, p.input)
	printSuccess("Rendered %s", strings.Join(p.formats, ", "))
	for _, format := range p.formats {
		path := base + pipeline.Extension(format)
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("open output %s: %w", path, err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return out.Close()
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .html, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" || output == "-" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	exts := make([]string, 0, len(pipeline.Formats))
	for _, format := range pipeline.Formats {
		exts = append(exts, pipeline.Extension(format))
	}
	// ".nodelink.svg" must win over ".svg".
	slices.SortFunc(exts, func(a, b string) int { return len(b) - len(a) })
	for _, ext := range exts {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
