// Package problem loads constraint problems described in YAML and builds
// contractor networks from them. It backs the ctcnet command.
package problem

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Problem is a named set of variables and constraints.
type Problem struct {
	// Name identifies the problem in logs and graph exports.
	Name string `yaml:"name"`

	Description string `yaml:"description,omitempty"`

	// Variables lists the domains, each either an interval or a vector.
	Variables []Variable `yaml:"variables"`

	// Constraints lists the contractors wired to the variables.
	Constraints []Constraint `yaml:"constraints"`
}

// Variable declares an interval or interval vector domain.
type Variable struct {
	Name     string    `yaml:"name"`
	Interval []Bound   `yaml:"interval,omitempty"`
	Vector   [][]Bound `yaml:"vector,omitempty"`
}

// IsVector reports whether the variable is an interval vector.
func (v Variable) IsVector() bool { return v.Vector != nil }

// Constraint declares one contractor. Which optional fields apply depends
// on Type:
//   - offset, scale: Value
//   - in: Interval for an interval variable, Box for a vector variable
//   - component: Index, with Vars = [vector, interval]
type Constraint struct {
	Type     string    `yaml:"type"`
	Vars     []string  `yaml:"vars"`
	Name     string    `yaml:"name,omitempty"`
	Value    *float64  `yaml:"value,omitempty"`
	Interval []Bound   `yaml:"interval,omitempty"`
	Box      [][]Bound `yaml:"box,omitempty"`
	Index    *int      `yaml:"index,omitempty"`
}

// Bound is an interval endpoint. In YAML it is a number or one of the
// strings "inf", "+inf" and "-inf".
type Bound float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Bound) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: bound must be a scalar", node.Line)
	}
	switch strings.ToLower(node.Value) {
	case "inf", "+inf", ".inf", "+.inf":
		*b = Bound(math.Inf(1))
		return nil
	case "-inf", "-.inf":
		*b = Bound(math.Inf(-1))
		return nil
	}
	var f float64
	if err := node.Decode(&f); err != nil {
		return fmt.Errorf("line %d: invalid bound %q", node.Line, node.Value)
	}
	*b = Bound(f)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (b Bound) MarshalYAML() (interface{}, error) {
	switch {
	case math.IsInf(float64(b), 1):
		return "inf", nil
	case math.IsInf(float64(b), -1):
		return "-inf", nil
	}
	return float64(b), nil
}

// Load reads and validates a problem file.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML problem document. The document is
// checked against the embedded CUE schema first, then decoded strictly so
// that misspelled fields are reported.
func Parse(data []byte) (*Problem, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var p Problem
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid problem: %w", err)
	}
	return &p, nil
}

func validateSchema(data []byte) error {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("empty problem document")
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Problem"))
	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Validate checks the cross-references the schema cannot express:
// unique variable names, exactly one shape per variable, known variable
// names in constraints, and the fields each constraint type needs.
func (p *Problem) Validate() error {
	vars := make(map[string]Variable, len(p.Variables))
	for _, v := range p.Variables {
		if _, dup := vars[v.Name]; dup {
			return fmt.Errorf("variable %q declared twice", v.Name)
		}
		if (v.Interval == nil) == (v.Vector == nil) {
			return fmt.Errorf("variable %q: exactly one of interval or vector is required", v.Name)
		}
		vars[v.Name] = v
	}

	for i, c := range p.Constraints {
		for _, name := range c.Vars {
			if _, ok := vars[name]; !ok {
				return fmt.Errorf("constraint %d (%s): unknown variable %q", i, c.Type, name)
			}
		}
		switch c.Type {
		case "offset", "scale":
			if c.Value == nil {
				return fmt.Errorf("constraint %d (%s): value is required", i, c.Type)
			}
		case "in":
			if c.Interval == nil && c.Box == nil {
				return fmt.Errorf("constraint %d (in): interval or box is required", i)
			}
		case "component":
			if c.Index == nil {
				return fmt.Errorf("constraint %d (component): index is required", i)
			}
		}
	}
	return nil
}
