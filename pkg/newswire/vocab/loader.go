package vocab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML shape vocabulary overrides are shipped in.
type File struct {
	Vocabularies map[string][]Term `yaml:"vocabularies"`
}

// Load reads vocabulary tables from a YAML file. Schemes present in
// the file replace the compiled-in table for that scheme; schemes the
// file omits keep their defaults.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load vocabularies: %w", err)
	}
	return Parse(data)
}

// Parse builds a store from YAML bytes layered over the defaults.
func Parse(data []byte) (*Store, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse vocabularies: %w", err)
	}
	tables := make(map[string][]Term, len(builtinTables)+len(f.Vocabularies))
	for scheme, terms := range builtinTables {
		tables[scheme] = terms
	}
	for scheme, terms := range f.Vocabularies {
		tables[scheme] = terms
	}
	return New(tables), nil
}
