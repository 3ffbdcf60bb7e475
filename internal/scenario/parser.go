package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"stp/internal/domain"
)

// Parser parses scenario files into domain scenarios
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// docSpec mirrors one YAML document of a scenario file. Vars stays a raw
// node so declaration order survives decoding.
type docSpec struct {
	Name  string     `yaml:"name"`
	Vars  yaml.Node  `yaml:"vars"`
	Steps []stepSpec `yaml:"steps"`
}

type stepSpec struct {
	Name     string      `yaml:"name"`
	Run      string      `yaml:"run"`
	Register string      `yaml:"register"`
	Skip     bool        `yaml:"skip"`
	Expect   *expectSpec `yaml:"expect"`
}

type expectSpec struct {
	ExitCode       *int   `yaml:"exit_code"`
	OutputContains string `yaml:"output_contains"`
}

// ParseFile parses all scenario documents in a file. A file may hold
// several scenarios separated by YAML document markers; each keeps the
// line span of its own document so source can be recovered later.
func (p *Parser) ParseFile(path string) ([]*domain.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file %s: %w", path, err)
	}

	abs := path
	if a, err := filepath.Abs(path); err == nil {
		abs = a
	}
	fileLines := strings.Split(string(data), "\n")

	var scenarios []*domain.Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc yaml.Node
		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse scenario file %s: %w", path, err)
		}

		sc, err := p.fromDocument(&doc, abs, fileLines)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		scenarios = append(scenarios, sc)
	}

	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios found in %s", path)
	}
	return scenarios, nil
}

// fromDocument converts a single YAML document into a Scenario
func (p *Parser) fromDocument(doc *yaml.Node, path string, fileLines []string) (*domain.Scenario, error) {
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New("scenario document must be a mapping")
	}
	root := doc.Content[0]

	var spec docSpec
	if err := root.Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if spec.Name == "" {
		return nil, errors.New("scenario is missing a name")
	}
	if len(spec.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", spec.Name)
	}

	steps := make([]domain.StepDef, 0, len(spec.Steps))
	for i, s := range spec.Steps {
		if s.Name == "" {
			return nil, fmt.Errorf("scenario %q: step %d is missing a name", spec.Name, i+1)
		}
		if s.Run == "" && !s.Skip {
			return nil, fmt.Errorf("scenario %q: step %q has no run command", spec.Name, s.Name)
		}
		def := domain.StepDef{
			Name:     s.Name,
			Run:      s.Run,
			Register: s.Register,
			Skip:     s.Skip,
		}
		if s.Expect != nil {
			def.Expect = &domain.Expect{
				ExitCode:       s.Expect.ExitCode,
				OutputContains: s.Expect.OutputContains,
			}
		}
		steps = append(steps, def)
	}

	vars, err := p.decodeVars(&spec.Vars)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", spec.Name, err)
	}

	start := root.Line
	end := maxLine(root)
	source := ""
	if start >= 1 && end >= start && end <= len(fileLines) {
		source = strings.Join(fileLines[start-1:end], "\n")
	}

	return &domain.Scenario{
		Subject:   spec.Name,
		Path:      path,
		StartLine: start,
		EndLine:   end,
		Source:    source,
		Steps:     steps,
		Vars:      vars,
	}, nil
}

// decodeVars reads the vars mapping preserving declaration order
func (p *Parser) decodeVars(node *yaml.Node) ([]domain.Var, error) {
	if node.Kind == 0 || node.IsZero() {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("vars must be a mapping")
	}
	var vars []domain.Var
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("decode var %q: %w", key.Value, err)
		}
		vars = append(vars, domain.Var{Name: key.Value, Value: value})
	}
	return vars, nil
}

// maxLine returns the highest line number reachable from node
func maxLine(node *yaml.Node) int {
	line := node.Line
	for _, child := range node.Content {
		if l := maxLine(child); l > line {
			line = l
		}
	}
	return line
}
