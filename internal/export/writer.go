package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"
)

// Format selects the snapshot serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatSCIP Format = "scip"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "scip":
		return FormatSCIP, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected json, yaml, or scip)", s)
	}
}

// WriteJSON writes the snapshot as indented JSON.
func (s *Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteYAML writes the snapshot as YAML.
func (s *Snapshot) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(s)
}

// WriteFile serializes the snapshot to path in the given format. When
// compress is set (or the path ends in .gz) the output is gzip-compressed.
// SCIP output is binary protobuf and is never compressed.
func (s *Snapshot) WriteFile(path string, format Format, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if format == FormatSCIP {
		data, err := s.MarshalSCIP()
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
		return nil
	}

	var w io.Writer = f
	var gz *gzip.Writer
	if compress || strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}

	switch format {
	case FormatJSON:
		err = s.WriteJSON(w)
	case FormatYAML:
		err = s.WriteYAML(w)
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return err
	}

	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("finalize compressed export: %w", err)
		}
	}
	return nil
}
