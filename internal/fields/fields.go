// internal/fields/fields.go
package fields

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"clonexport/core/clone"
	"clonexport/core/feature"
)

// Field is one output column.
type Field interface {
	Header() string
	Value(c *clone.Clone) string
}

// DefaultSpec is used when no columns are requested.
const DefaultSpec = "-cloneId -count -fraction -targets -nFeature CDR3 -qFeature CDR3 -aaFeature CDR3"

var (
	ErrUnknownField = errors.New("unknown field")
	ErrMissingArg   = errors.New("missing field argument")
)

type factory struct {
	args int
	help string
	make func(args []string) (Field, error)
}

var registry = map[string]factory{}

func register(name string, args int, help string, mk func([]string) (Field, error)) {
	registry[name] = factory{args: args, help: help, make: mk}
}

// Parse turns tokens like ["-count", "-nFeature", "CDR3"] into fields.
func Parse(tokens []string) ([]Field, error) {
	var out []Field
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		name := strings.TrimPrefix(tok, "-")
		f, ok := lookup(name)
		if !ok || !strings.HasPrefix(tok, "-") {
			return nil, fmt.Errorf("%w %q", ErrUnknownField, tok)
		}
		if i+f.args >= len(tokens) {
			return nil, fmt.Errorf("%w: %s needs %d argument(s)", ErrMissingArg, tok, f.args)
		}
		args := tokens[i+1 : i+1+f.args]
		fld, err := f.make(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", tok, err)
		}
		out = append(out, fld)
		i += f.args
	}
	return out, nil
}

// ParseSpec splits spec on whitespace and parses it; an empty spec yields
// the DefaultSpec columns.
func ParseSpec(spec string) ([]Field, error) {
	tokens := strings.Fields(spec)
	if len(tokens) == 0 {
		tokens = strings.Fields(DefaultSpec)
	}
	return Parse(tokens)
}

func lookup(name string) (factory, bool) {
	for k, f := range registry {
		if strings.EqualFold(k, name) {
			return f, true
		}
	}
	return factory{}, false
}

// Headers returns the column titles of fs in order.
func Headers(fs []Field) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Header()
	}
	return out
}

// Values renders c through every field.
func Values(fs []Field, c *clone.Clone) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Value(c)
	}
	return out
}

// Usage lists the available fields for help output.
func Usage() string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, n := range names {
		f := registry[n]
		arg := ""
		if f.args > 0 {
			arg = " <feature>"
		}
		fmt.Fprintf(&b, "  -%-22s %s\n", n+arg, f.help)
	}
	return b.String()
}

func featureArg(args []string) (feature.GeneFeature, error) {
	return feature.Parse(args[0])
}
