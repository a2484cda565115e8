package overrides

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
	"github.com/rdawebb/fixture-fetcher/internal/domain/override"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
)

const templateDateLayout = "2006-01-02 15:04"

type entryValue struct {
	TV   *string `yaml:"tv"`
	Game string  `yaml:"game,omitempty"`
	Date string  `yaml:"date,omitempty"`
}

// YAMLSource reads override files shaped as a mapping of key to {tv: ...}.
type YAMLSource struct {
	logger *logging.Logger
}

func NewYAMLSource(logger *logging.Logger) *YAMLSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &YAMLSource{logger: logger}
}

// Load returns the entries of the file at path in file order. Entries that
// are not a mapping with a string tv field are skipped.
func (s *YAMLSource) Load(ctx context.Context, path string) (override.Set, bool, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "read overrides %s", path)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, false, crerr.Wrapf(err, "parse overrides %s", path)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return override.Set{}, true, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return override.Set{}, true, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, false, crerr.Newf("overrides %s: expected a mapping at top level", path)
	}

	set := make(override.Set, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		key := strings.TrimSpace(keyNode.Value)
		if keyNode.Kind != yaml.ScalarNode || key == "" {
			s.logger.DebugContext(ctx, "skipping override with non-scalar key", "path", path, "line", keyNode.Line)
			continue
		}
		if valueNode.Kind != yaml.MappingNode {
			s.logger.DebugContext(ctx, "skipping malformed override", "path", path, "key", key)
			continue
		}

		var value entryValue
		if err := valueNode.Decode(&value); err != nil || value.TV == nil {
			s.logger.DebugContext(ctx, "skipping override without tv", "path", path, "key", key)
			continue
		}
		set = append(set, override.Entry{Key: key, TV: *value.TV})
	}

	return set, true, nil
}

// WriteTemplate writes an override file listing fixtures by id with an
// empty tv field for users to fill in.
func WriteTemplate(path string, fixtures []fixture.Fixture) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fixtures {
		date := ""
		if f.HasKickoff() {
			date = f.KickoffAt.UTC().Format(templateDateLayout)
		}
		empty := ""
		value := entryValue{TV: &empty, Game: f.HomeTeam + " vs " + f.AwayTeam, Date: date}

		var valueNode yaml.Node
		if err := valueNode.Encode(value); err != nil {
			return crerr.Wrapf(err, "encode override template entry %s", f.ID)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.ID, Style: yaml.DoubleQuotedStyle},
			&valueNode,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return crerr.Wrap(err, "encode override template")
	}
	if err := enc.Close(); err != nil {
		return crerr.Wrap(err, "flush override template")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return crerr.Wrapf(err, "create dir for %s", path)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return crerr.Wrapf(err, "write override template %s", path)
	}
	return nil
}
