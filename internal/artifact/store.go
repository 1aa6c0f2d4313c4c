package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"carprice/internal/common/fsutil"
)

// DefaultPath is where the trainer writes and the service looks by default.
const DefaultPath = "modelo_carro.json"

type codec struct {
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

// codecFor picks the serializer from the file extension: .json (or none), .yaml/.yml, .toml.
func codecFor(path string) (codec, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".json":
		return codec{
			marshal:   func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") },
			unmarshal: json.Unmarshal,
		}, nil
	case ".yaml", ".yml":
		return codec{marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}, nil
	case ".toml":
		return codec{marshal: toml.Marshal, unmarshal: toml.Unmarshal}, nil
	default:
		return codec{}, fmt.Errorf("unsupported artifact extension: %s", ext)
	}
}

// Save validates a and writes it atomically to path.
func Save(path string, a *Artifact) error {
	if err := a.Validate(); err != nil {
		return err
	}
	p, err := fsutil.Resolve(path)
	if err != nil {
		return err
	}
	c, err := codecFor(p)
	if err != nil {
		return err
	}
	b, err := c.marshal(a)
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	return fsutil.WriteFileAtomic(p, b, 0o644)
}

// Load reads and validates the artifact at path. A missing file yields an error
// matching os.ErrNotExist.
func Load(path string) (*Artifact, error) {
	p, err := fsutil.Resolve(path)
	if err != nil {
		return nil, err
	}
	c, err := codecFor(p)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var a Artifact
	if err := c.unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", p, err)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return &a, nil
}
