package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"gopkg.in/yaml.v3"
)

// Format is a config file syntax.
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Formats lists the supported syntaxes.
var Formats = []Format{FormatHCL, FormatTOML, FormatYAML}

// FormatFromPath picks a syntax from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported config file extension %q (want .hcl, .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// LoadFile reads an overlay from path, choosing the syntax by extension.
func LoadFile(path string) (Overlay, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Overlay{}, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return Overlay{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Decode(src, path, format)
}

// Decode parses src in the given syntax. Unknown keys are errors in every
// syntax so that typos do not silently fall back to defaults.
func Decode(src []byte, filename string, format Format) (Overlay, error) {
	var o Overlay
	switch format {
	case FormatHCL:
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCL(src, filename)
		if diags.HasErrors() {
			return Overlay{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
		}
		diags = gohcl.DecodeBody(file.Body, nil, &o)
		if diags.HasErrors() {
			return Overlay{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
		}

	case FormatTOML:
		md, err := toml.Decode(string(src), &o)
		if err != nil {
			return Overlay{}, fmt.Errorf("failed to decode TOML %s: %w", filename, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return Overlay{}, fmt.Errorf("unknown keys in %s: %s", filename, strings.Join(keys, ", "))
		}

	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(src))
		dec.KnownFields(true)
		if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
			return Overlay{}, fmt.Errorf("failed to decode YAML %s: %w", filename, err)
		}

	default:
		return Overlay{}, fmt.Errorf("unsupported config format %q", format)
	}
	return o, nil
}

// Encode writes o in the given syntax.
func Encode(w io.Writer, o Overlay, format Format) error {
	switch format {
	case FormatHCL:
		f := hclwrite.NewEmptyFile()
		gohcl.EncodeIntoBody(&o, f.Body())
		_, err := w.Write(f.Bytes())
		return err
	case FormatTOML:
		return toml.NewEncoder(w).Encode(o)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(o); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported config format %q", format)
	}
}
