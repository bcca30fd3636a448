package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAML is a kong configuration loader. Keys are flag names, either at the top
// level or nested under the name of the command they belong to; "-" in a flag
// name may be written as "_".
//
//	workers: 4
//	convert:
//	  format: tga
//	  rle: true
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not parse configuration: %w", err)
	}

	var f kong.ResolverFunc = func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if section, ok := values[parent.Command.Name].(map[string]any); ok {
				if v, ok := lookup(section, flag.Name); ok {
					return v, nil
				}
			}
		}
		if v, ok := lookup(values, flag.Name); ok {
			return v, nil
		}
		return nil, nil
	}
	return f, nil
}

func lookup(values map[string]any, name string) (any, bool) {
	for _, key := range []string{name, strings.ReplaceAll(name, "-", "_")} {
		raw, ok := values[key]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case map[string]any, nil:
			return nil, false
		case []any:
			parts := make([]string, len(v))
			for i, p := range v {
				parts[i] = fmt.Sprint(p)
			}
			return strings.Join(parts, ","), true
		default:
			return fmt.Sprint(v), true
		}
	}
	return nil, false
}
