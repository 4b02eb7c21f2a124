package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDir reads catalog files from dir: *.json (including *.template.json)
// and *.yaml / *.yml. A file may hold one template or a list. Files are read
// in name order; other files are ignored.
func LoadDir(dir string) ([]Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("templates: read dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []Template
	for _, name := range names {
		ts, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, ts...)
	}
	return out, nil
}

// LoadFile decodes one catalog file. Every template must validate.
func LoadFile(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("templates: read %s: %w", path, err)
	}

	var ts []Template
	if strings.EqualFold(filepath.Ext(path), ".json") {
		ts, err = decodeJSON(data)
	} else {
		ts, err = decodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("templates: decode %s: %w", path, err)
	}

	for i, t := range ts {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("templates: %s entry %d: %w", path, i, err)
		}
	}
	return ts, nil
}

func decodeJSON(data []byte) ([]Template, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var ts []Template
		err := json.Unmarshal(data, &ts)
		return ts, err
	}
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return []Template{t}, nil
}

func decodeYAML(data []byte) ([]Template, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		var ts []Template
		err := node.Decode(&ts)
		return ts, err
	}
	var t Template
	if err := node.Decode(&t); err != nil {
		return nil, err
	}
	return []Template{t}, nil
}

// Import loads dir and adds every template to s, replacing same-id entries.
func (s *Store) Import(ctx context.Context, dir string) (int, error) {
	ts, err := LoadDir(dir)
	if err != nil {
		return 0, err
	}
	for _, t := range ts {
		if _, err := s.Add(ctx, t); err != nil {
			return 0, err
		}
	}
	s.log.Info("imported templates", "dir", dir, "count", len(ts))
	return len(ts), nil
}
