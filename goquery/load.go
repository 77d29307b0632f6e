package goquery

import (
	"bytes"
	_ "embed"
	"errors"
	"io"

	"github.com/fwojciec/contrasta"
	"gopkg.in/yaml.v3"
)

//go:embed publishers.yaml
var defaultRules []byte

// rulesFile is the layout of a publisher rules document.
type rulesFile struct {
	Publishers []RuleConfig `yaml:"publishers"`
}

// LoadRules decodes and compiles publisher rules from a YAML document.
// Returns EINVALID if the document is malformed, a rule is invalid, or two
// rules share a name.
func LoadRules(r io.Reader) ([]*Rule, error) {
	var f rulesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, contrasta.Errorf(contrasta.EINVALID, "no publishers defined")
		}
		return nil, contrasta.Errorf(contrasta.EINVALID, "failed to parse publisher rules: %v", err)
	}
	if len(f.Publishers) == 0 {
		return nil, contrasta.Errorf(contrasta.EINVALID, "no publishers defined")
	}

	seen := make(map[string]bool)
	rules := make([]*Rule, 0, len(f.Publishers))
	for _, c := range f.Publishers {
		if seen[c.Name] {
			return nil, contrasta.Errorf(contrasta.EINVALID, "duplicate publisher %q", c.Name)
		}
		seen[c.Name] = true

		rule, err := NewRule(c)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// DefaultRules returns the built-in rules for elplural.com and eldiario.es.
func DefaultRules() ([]*Rule, error) {
	return LoadRules(bytes.NewReader(defaultRules))
}
