package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromYAMLFile loads a YAML document from path. See FromYAML.
func FromYAMLFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}
	return FromYAML(data)
}

// FromYAML parses a YAML document into a flat Map. Nested mappings are
// flattened with dots, so
//
//	assets:
//	  s3:
//	    bucket: media
//
// yields the key "assets.s3.bucket". Flat dotted keys are accepted as well.
// Scalars are converted with their YAML string form; sequences are joined
// with commas.
func FromYAML(data []byte) (Map, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrParseYAML, err)
	}
	out := make(Map)
	flatten(out, "", doc)
	return out, nil
}

func flatten(out Map, prefix string, node map[string]any) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(out, key, val)
		case []any:
			items := make([]string, 0, len(val))
			for _, item := range val {
				items = append(items, scalar(item))
			}
			out[key] = strings.Join(items, ",")
		case nil:
			out[key] = ""
		default:
			out[key] = scalar(val)
		}
	}
}

func scalar(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
