package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrUnknownBlock is returned for block names without a schema.
var ErrUnknownBlock = errors.New("unknown site block")

// ErrInvalidBlock wraps schema violations.
var ErrInvalidBlock = errors.New("invalid site block")

var blockSchemas = mustCompileSchemas()

func mustCompileSchemas() map[string]*jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	files, err := fs.Glob(schemaFS, "schemas/*.json")
	if err != nil {
		panic(err)
	}
	for _, p := range files {
		f, err := schemaFS.Open(p)
		if err != nil {
			panic(err)
		}
		if err := compiler.AddResource(p, f); err != nil {
			panic(fmt.Sprintf("content: add schema %s: %v", p, err))
		}
		f.Close()
	}
	out := make(map[string]*jsonschema.Schema, len(files))
	for _, p := range files {
		s, err := compiler.Compile(p)
		if err != nil {
			panic(fmt.Sprintf("content: compile schema %s: %v", p, err))
		}
		out[strings.TrimSuffix(path.Base(p), ".json")] = s
	}
	return out
}

// Blocks lists the known block names in sorted order.
func Blocks() []string {
	out := make([]string, 0, len(blockSchemas))
	for name := range blockSchemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ValidateBlock checks payload against the schema registered for name.
func ValidateBlock(name string, payload []byte) error {
	schema, ok := blockSchemas[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBlock, name)
	}
	var v interface{}
	if err := json.Unmarshal(payload, &v); err != nil {
		return fmt.Errorf("%w: body is not valid JSON: %v", ErrInvalidBlock, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBlock, err)
	}
	return nil
}
