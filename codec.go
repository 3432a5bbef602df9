package vista

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Codec decodes a startup parameter document into Params. pkg/file picks
// one from the file extension unless the caller sets it explicitly.
type Codec interface {
	Unmarshal(data []byte, v any) error

	// ContentType names the format in decode errors and log lines.
	ContentType() string
}

// JSONCodec reads .json params files.
type JSONCodec struct{}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) ContentType() string {
	return "application/json"
}

// YAMLCodec reads .yaml and .yml params files.
type YAMLCodec struct{}

func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// TOMLCodec reads .toml params files.
type TOMLCodec struct{}

func (TOMLCodec) Unmarshal(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

func (TOMLCodec) ContentType() string {
	return "application/toml"
}

var (
	_ Codec = JSONCodec{}
	_ Codec = YAMLCodec{}
	_ Codec = TOMLCodec{}
)

// CodecForPath picks a codec from a file extension. Unknown extensions fall
// back to JSON.
func CodecForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	case ".toml":
		return TOMLCodec{}
	default:
		return JSONCodec{}
	}
}
