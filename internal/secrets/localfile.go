package secrets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/varlet/varlet/internal/variable"
)

// LocalFile resolves variables from a file on disk. The format is chosen by
// extension: .env (KEY=VALUE lines), .json (top-level object), or
// .yaml/.yml (mapping). The file is parsed once at open time.
type LocalFile struct {
	path string
	vars map[string]string
}

// OpenLocalFile reads and parses a variable file. Parse failures name the
// file so the operator knows which source is broken.
func OpenLocalFile(path string) (*LocalFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading variable file: %w", err)
	}

	vars, err := parseVariableFile(path, data)
	if err != nil {
		return nil, err
	}
	return &LocalFile{path: path, vars: vars}, nil
}

// Path returns the backing file path.
func (l *LocalFile) Path() string {
	return l.path
}

// Len returns the number of variables loaded from the file.
func (l *LocalFile) Len() int {
	return len(l.vars)
}

func (l *LocalFile) GetVariable(key string) (string, bool, error) {
	val, ok := l.vars[key]
	return val, ok, nil
}

func parseVariableFile(path string, data []byte) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".env":
		return parseEnvFile(path, data)
	case ".json":
		return parseJSONFile(path, data)
	case ".yaml", ".yml":
		return parseYAMLFile(path, data)
	default:
		return nil, fmt.Errorf("unsupported variable file format: %s", path)
	}
}

func parseEnvFile(path string, data []byte) (map[string]string, error) {
	vars, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return vars, nil
}

func parseJSONFile(path string, data []byte) (map[string]string, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("parsing %s: the file is empty", path)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: the file must contain a JSON object: %w", path, err)
	}
	return encodeValues(path, doc)
}

func parseYAMLFile(path string, data []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: the file must contain a mapping: %w", path, err)
	}
	return encodeValues(path, doc)
}

// encodeValues converts parsed values to the persisted textual contract:
// strings verbatim, everything else canonical JSON.
func encodeValues(path string, doc map[string]any) (map[string]string, error) {
	vars := make(map[string]string, len(doc))
	for key, val := range doc {
		text, err := variable.Encode(val)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: variable %q: %w", path, key, err)
		}
		vars[key] = text
	}
	return vars, nil
}
