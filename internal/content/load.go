package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//go:embed pack.schema.json
var packSchemaJSON []byte

const schemaURL = "pack.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func packSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(packSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// Validate checks a YAML document against the pack schema.
func Validate(doc []byte) error {
	s, err := packSchema()
	if err != nil {
		return err
	}

	var raw any
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	// Round-trip through JSON so the validator sees float64 numbers and
	// string-keyed maps.
	buf, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("convert to json: %w", err)
	}
	var v any
	if err := json.Unmarshal(buf, &v); err != nil {
		return fmt.Errorf("convert to json: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("validate pack: %w", err)
	}
	return nil
}

// Parse validates and decodes one pack document.
func Parse(doc []byte) (Pack, error) {
	if err := Validate(doc); err != nil {
		return Pack{}, err
	}
	var p Pack
	if err := yaml.Unmarshal(doc, &p); err != nil {
		return Pack{}, fmt.Errorf("decode pack: %w", err)
	}
	return p, nil
}

// Default returns the built-in pack.
func Default() (Pack, error) {
	p, err := Parse(defaultsYAML)
	if err != nil {
		return Pack{}, fmt.Errorf("built-in content: %w", err)
	}
	return p, nil
}

// LoadDir reads every .yaml or .yml file in dir in name order and merges
// them. Later files override earlier ones by id.
func LoadDir(dir string) (Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Pack{}, fmt.Errorf("read content dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var merged Pack
	for _, name := range names {
		doc, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return Pack{}, fmt.Errorf("read %s: %w", name, err)
		}
		p, err := Parse(doc)
		if err != nil {
			return Pack{}, fmt.Errorf("%s: %w", name, err)
		}
		merged = Merge(merged, p)
		log.Printf("Loaded content file %s", name)
	}
	return merged, nil
}

// Load builds the repository from the built-in pack plus an optional
// overlay directory. A missing overlay directory is not an error.
func Load(overlayDir string) (*Repository, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}
	if overlayDir != "" {
		overlay, err := LoadDir(overlayDir)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("No content overlay at %s", overlayDir)
		case err != nil:
			return nil, err
		default:
			base = Merge(base, overlay)
		}
	}
	return NewRepository(base)
}

// Merge returns base with every record of overlay applied on top. Records
// with a known id replace the base record in place; new ids are appended.
// Dialog pools are replaced per key.
func Merge(base, overlay Pack) Pack {
	out := Pack{
		Items:        mergeByID(base.Items, overlay.Items, func(v Item) string { return v.ID }),
		Jobs:         mergeByID(base.Jobs, overlay.Jobs, func(v Job) string { return v.ID }),
		Studies:      mergeByID(base.Studies, overlay.Studies, func(v Study) string { return v.ID }),
		Adventures:   mergeByID(base.Adventures, overlay.Adventures, func(v Location) string { return v.ID }),
		Achievements: mergeByID(base.Achievements, overlay.Achievements, func(v Achievement) string { return v.ID }),
	}
	if len(base.Dialog)+len(overlay.Dialog) > 0 {
		out.Dialog = make(map[string][]string, len(base.Dialog)+len(overlay.Dialog))
		for k, v := range base.Dialog {
			out.Dialog[k] = v
		}
		for k, v := range overlay.Dialog {
			out.Dialog[k] = v
		}
	}
	return out
}

func mergeByID[T any](base, overlay []T, id func(T) string) []T {
	if len(overlay) == 0 {
		return append([]T(nil), base...)
	}
	out := append([]T(nil), base...)
	pos := make(map[string]int, len(out))
	for i, v := range out {
		pos[id(v)] = i
	}
	for _, v := range overlay {
		if i, ok := pos[id(v)]; ok {
			out[i] = v
			continue
		}
		pos[id(v)] = len(out)
		out = append(out, v)
	}
	return out
}
