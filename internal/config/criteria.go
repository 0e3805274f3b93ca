package config

import (
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

const tupleLen = 4

// UnmarshalYAML accepte les deux formes :
//
//	- [extractor, "en", 2, "-"]
//	- {extractor: extractor, match: en, index: 2, delim: "-"}
func (a *CriterionArgs) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) != tupleLen {
			return goerr.New("criteria_args: tuple de 4 éléments attendu",
				goerr.V("line", node.Line), goerr.V("got", len(node.Content)))
		}
		for _, n := range node.Content {
			if n.Kind != yaml.ScalarNode {
				return goerr.New("criteria_args: les éléments du tuple doivent être des scalaires", goerr.V("line", n.Line))
			}
		}
		idx, err := strconv.Atoi(node.Content[2].Value)
		if err != nil {
			return goerr.Wrap(err, "criteria_args: index non entier",
				goerr.V("line", node.Content[2].Line), goerr.V("value", node.Content[2].Value))
		}
		a.Extractor = node.Content[0].Value
		a.Match = node.Content[1].Value
		a.Index = idx
		a.Delim = node.Content[3].Value
		return nil

	case yaml.MappingNode:
		// alias pour ne pas rappeler UnmarshalYAML
		type plain CriterionArgs
		p := plain{Extractor: "extractor", Delim: "-"}
		if err := node.Decode(&p); err != nil {
			return goerr.Wrap(err, "criteria_args: map invalide", goerr.V("line", node.Line))
		}
		*a = CriterionArgs(p)
		return nil

	default:
		return goerr.New("criteria_args: tuple ou map attendu", goerr.V("line", node.Line))
	}
}

// MarshalYAML réécrit toujours la forme tuple (utilisé par la migration).
func (a CriterionArgs) MarshalYAML() (any, error) {
	return []any{a.Extractor, a.Match, a.Index, a.Delim}, nil
}
