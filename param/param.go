/*
Package param resolves named design parameters to plain numbers.

Parameters live in a flat dictionary. Values are either numeric literals
or expression strings starting with "=", evaluated over the other
parameters: "=width / 4 + rim". Expressions may reference parameters that
are themselves expressions; reference cycles are detected and reported.
The geometry packages never see expressions, only resolved floats.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package param

import (
	"fmt"
	"sort"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	yaml "github.com/goccy/go-yaml"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/werkbank"
)

// tracer writes to trace with key 'werkbank.param'
func tracer() tracing.Trace {
	return tracing.Select("werkbank.param")
}

// Resolver resolves a parameter name to a number.
type Resolver interface {
	Resolve(name string) (float64, error)
}

// Dict is a Resolver over an in-memory parameter map.
type Dict struct {
	vals map[string]any
}

// NewDict wraps a parameter map. The map is not copied.
func NewDict(vals map[string]any) *Dict {
	if vals == nil {
		vals = map[string]any{}
	}
	return &Dict{vals: vals}
}

// LoadYAML reads a flat YAML mapping of parameter names to values.
func LoadYAML(data []byte) (*Dict, error) {
	vals := map[string]any{}
	if err := yaml.Unmarshal(data, &vals); err != nil {
		return nil, fmt.Errorf("parameter yaml: %w", err)
	}
	d := NewDict(vals)
	tracer().Debugf("loaded %d parameters", len(vals))
	return d, nil
}

// Resolve evaluates the named parameter to a finite float.
func (d *Dict) Resolve(name string) (float64, error) {
	return d.resolve(name, map[string]bool{})
}

// ResolveDefault is Resolve with a fallback for absent parameters.
// Present but unusable parameters also fall back, with a trace error.
func (d *Dict) ResolveDefault(name string, def float64) float64 {
	if _, ok := d.vals[name]; !ok {
		return def
	}
	v, err := d.Resolve(name)
	if err != nil {
		tracer().Errorf("parameter %q unusable, falling back to %g: %v", name, def, err)
		return def
	}
	return v
}

// Names lists the parameter names in sorted order.
func (d *Dict) Names() []string {
	names := make([]string, 0, len(d.vals))
	for name := range d.vals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Dict) resolve(name string, visiting map[string]bool) (float64, error) {
	if visiting[name] {
		return 0, fmt.Errorf("parameter %q is part of a reference cycle", name)
	}
	raw, ok := d.vals[name]
	if !ok {
		return 0, fmt.Errorf("unknown parameter %q", name)
	}
	switch v := raw.(type) {
	case float64:
		return finite(name, v)
	case float32:
		return finite(name, float64(v))
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		if strings.HasPrefix(v, "=") {
			visiting[name] = true
			defer delete(visiting, name)
			return d.eval(v[1:], visiting)
		}
	}
	return 0, fmt.Errorf("parameter %q is not numeric (%T)", name, raw)
}

// eval compiles and runs one expression with all referenced parameters
// resolved into its environment first.
func (d *Dict) eval(src string, visiting map[string]bool) (float64, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return 0, fmt.Errorf("parameter expression %q: %w", src, err)
	}
	deps := identCollector{seen: map[string]bool{}}
	ast.Walk(&tree.Node, &deps)
	env := make(map[string]any, len(deps.names))
	for _, dep := range deps.names {
		val, err := d.resolve(dep, visiting)
		if err != nil {
			return 0, err
		}
		env[dep] = val
	}
	prog, err := expr.Compile(src, expr.Env(env), expr.AsFloat64())
	if err != nil {
		return 0, fmt.Errorf("parameter expression %q: %w", src, err)
	}
	out, err := expr.Run(prog, env)
	if err != nil {
		return 0, fmt.Errorf("parameter expression %q: %w", src, err)
	}
	f, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("parameter expression %q is not numeric", src)
	}
	return finite(src, f)
}

// identCollector gathers the parameter names an expression references.
type identCollector struct {
	seen  map[string]bool
	names []string
}

func (c *identCollector) Visit(node *ast.Node) {
	id, ok := (*node).(*ast.IdentifierNode)
	if !ok || c.seen[id.Value] {
		return
	}
	c.seen[id.Value] = true
	c.names = append(c.names, id.Value)
}

func finite(what string, v float64) (float64, error) {
	if !werkbank.IsFinite(v) {
		return 0, fmt.Errorf("parameter %q is not finite", what)
	}
	return v, nil
}
