package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/funvibe/jsti/internal/typesystem"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level jsti.yaml configuration.
type Config struct {
	// Globals are bound in the global scope before analysis.
	Globals map[string]Global `yaml:"globals"`

	Options Options `yaml:"options"`
}

// Global declares one pre-seeded binding.
type Global struct {
	// Type is a lattice name: int, number, boolean, string, object, ...
	Type string `yaml:"type"`

	// Kind is the object subtype, e.g. float3 or texture. Only valid for objects.
	Kind string `yaml:"kind,omitempty"`

	// Value makes the binding statically known. Omit it for dynamic inputs.
	Value yaml.Node `yaml:"value,omitempty"`

	// Uniform marks the binding as a uniform input: expressions reading it
	// depend on it.
	Uniform bool `yaml:"uniform,omitempty"`

	Source   string `yaml:"source,omitempty"`
	Semantic string `yaml:"semantic,omitempty"`
	Output   bool   `yaml:"output,omitempty"`
}

// Options tune the analysis. Unset fields take their defaults.
type Options struct {
	// Builtins seeds Math and the vector constructors. Default true.
	Builtins *bool `yaml:"builtins,omitempty"`

	// Uniforms keeps uniform-dependency metadata on annotations. Default true.
	Uniforms *bool `yaml:"uniforms,omitempty"`
}

// Binding is a validated global ready to be declared.
type Binding struct {
	Name string
	Info *typesystem.Annotation
}

// Default returns the configuration used when no project file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a jsti.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses jsti.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if _, err := cfg.Bindings(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for jsti.yaml starting from dir and walking up to
// parent directories. It returns "" and a nil error when none is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		for _, name := range ProjectFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) setDefaults() {
	if c.Options.Builtins == nil {
		c.Options.Builtins = ptr(true)
	}
	if c.Options.Uniforms == nil {
		c.Options.Uniforms = ptr(true)
	}
}

func (c *Config) BuiltinsEnabled() bool {
	return c.Options.Builtins == nil || *c.Options.Builtins
}

func (c *Config) UniformsEnabled() bool {
	return c.Options.Uniforms == nil || *c.Options.Uniforms
}

// Bindings validates every global and converts it to an annotation, in
// name order.
func (c *Config) Bindings() ([]Binding, error) {
	names := make([]string, 0, len(c.Globals))
	for name := range c.Globals {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]Binding, 0, len(names))
	for _, name := range names {
		info, err := c.Globals[name].annotation()
		if err != nil {
			return nil, fmt.Errorf("globals.%s: %w", name, err)
		}
		if c.Globals[name].Uniform && c.UniformsEnabled() {
			info.SetUniformDependencies([]string{name})
		}
		out = append(out, Binding{Name: name, Info: info})
	}
	return out, nil
}

func (g Global) annotation() (*typesystem.Annotation, error) {
	if g.Type == "" {
		return nil, fmt.Errorf("type is required")
	}
	t, err := typesystem.ParseType(g.Type)
	if err != nil {
		return nil, err
	}
	if t == typesystem.Invalid {
		return nil, fmt.Errorf("type %q cannot be declared", g.Type)
	}
	if g.Kind != "" && t != typesystem.Object {
		return nil, fmt.Errorf("kind %q is only valid for objects", g.Kind)
	}

	info := typesystem.New(t)
	if t == typesystem.Object {
		kind := typesystem.KindAny
		if g.Kind != "" {
			kind = typesystem.Kind(g.Kind)
		}
		info.SetKind(kind)
	}
	info.Source = g.Source
	info.Semantic = g.Semantic
	info.Output = g.Output
	info.Global = true

	if g.Value.Kind == 0 {
		return info, nil
	}
	var v any
	if err := g.Value.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding value: %w", err)
	}
	if err := checkValue(t, v); err != nil {
		return nil, err
	}
	info.SetStaticValue(v)
	return info, nil
}

// checkValue reports whether v is a valid constant for t. A null value is
// accepted for objects, arrays and functions.
func checkValue(t typesystem.Type, v any) error {
	if v == nil {
		switch t {
		case typesystem.Null, typesystem.Object, typesystem.Array, typesystem.Function, typesystem.Any:
			return nil
		}
		return fmt.Errorf("null is not a valid %s value", t)
	}
	got := typesystem.FromValue(v).Type()
	switch {
	case got == t, t == typesystem.Any:
		return nil
	case t == typesystem.Number && got == typesystem.Int:
		return nil
	}
	return fmt.Errorf("value %v does not match type %s", v, t)
}

func ptr[T any](v T) *T { return &v }
