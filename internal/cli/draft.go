package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/snoody/tft-tierlist/internal/builder"
	"gopkg.in/yaml.v3"
)

// LoadDraft reads a composition draft, choosing the decoder from the file
// extension: .yaml/.yml, .toml or .json.
func LoadDraft(path string) (*builder.Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	draft, err := DecodeDraft(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return draft, nil
}

// DecodeDraft decodes data in the named format (yaml, yml, toml or json).
func DecodeDraft(data []byte, format string) (*builder.Draft, error) {
	var draft builder.Draft

	switch format {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&draft); err != nil {
			return nil, fmt.Errorf("invalid yaml draft: %w", err)
		}
	case "toml":
		md, err := toml.Decode(string(data), &draft)
		if err != nil {
			return nil, fmt.Errorf("invalid toml draft: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("invalid toml draft: unknown key %q", undecoded[0].String())
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&draft); err != nil {
			return nil, fmt.Errorf("invalid json draft: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported draft format %q", format)
	}

	return &draft, nil
}
