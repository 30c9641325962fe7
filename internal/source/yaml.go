// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package source

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"grimm.is/vardoc/internal/errors"
	"grimm.is/vardoc/internal/varset"
)

// decodeJSON reads data with the JSON tokenizer into a yaml.Node tree,
// keeping mapping order, and decodes that tree like a YAML document.
func decodeJSON(name string, data []byte, role Role) (varset.Source, error) {
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		return varset.Source{}, errors.Wrap(err, errors.KindMalformedSource, "invalid JSON")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := jsonNode(dec, data)
	if err != nil {
		return varset.Source{}, errors.Wrap(err, errors.KindMalformedSource, "invalid JSON")
	}
	return decodeRoot(name, root, role)
}

// jsonNode converts the next JSON value of dec into a node. Strings keep
// the double-quoted style they had in the source.
func jsonNode(dec *json.Decoder, data []byte) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	line := 1 + bytes.Count(data[:dec.InputOffset()], []byte("\n"))

	switch t := tok.(type) {
	case json.Delim:
		n := &yaml.Node{Line: line}
		switch t {
		case '{':
			n.Kind, n.Tag = yaml.MappingNode, "!!map"
			for dec.More() {
				key, err := jsonNode(dec, data)
				if err != nil {
					return nil, err
				}
				val, err := jsonNode(dec, data)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, key, val)
			}
		case '[':
			n.Kind, n.Tag = yaml.SequenceNode, "!!seq"
			for dec.More() {
				item, err := jsonNode(dec, data)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, item)
			}
		}
		// closing delimiter
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return n, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: t, Line: line}, nil
	case json.Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: t.String(), Line: line}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t), Line: line}, nil
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null", Line: line}, nil
	}
}

func decodeYAML(name string, data []byte, role Role) (varset.Source, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return varset.Source{}, errors.Wrap(err, errors.KindMalformedSource, "invalid YAML")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return varset.Source{}, malformed("empty document")
	}
	return decodeRoot(name, doc.Content[0], role)
}

func decodeRoot(name string, root *yaml.Node, role Role) (varset.Source, error) {
	root = resolve(root)
	if root.Kind != yaml.MappingNode {
		return varset.Source{}, malformed("line %d: top level must be a mapping", root.Line)
	}

	src := varset.Source{Name: name}
	if role == RoleTemplate {
		vars := lookup(root, "variables")
		if vars == nil {
			return varset.Source{}, malformed(`missing "variables"`)
		}
		names, err := nodeNames(vars)
		if err != nil {
			return varset.Source{}, err
		}
		src.Names = names
		return src, nil
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := resolve(root.Content[i])
		if key.Kind != yaml.ScalarNode {
			return varset.Source{}, malformed("line %d: variable name must be a scalar", key.Line)
		}
		d, err := nodeDefault(root.Content[i+1])
		if err != nil {
			return varset.Source{}, err
		}
		src.Defaults = append(src.Defaults, varset.Entry{Name: key.Value, Default: d})
	}
	return src, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if k := resolve(mapping.Content[i]); k.Kind == yaml.ScalarNode && k.Value == key {
			return resolve(mapping.Content[i+1])
		}
	}
	return nil
}

// nodeNames reads a list of names or the keys of a mapping.
func nodeNames(n *yaml.Node) ([]string, error) {
	var names []string
	switch n.Kind {
	case yaml.SequenceNode:
		for _, item := range n.Content {
			item = resolve(item)
			if item.Kind != yaml.ScalarNode || item.ShortTag() == "!!null" {
				return nil, malformed("line %d: variable name must be a scalar", item.Line)
			}
			names = append(names, item.Value)
		}
	case yaml.MappingNode:
		for i := 0; i < len(n.Content); i += 2 {
			key := resolve(n.Content[i])
			if key.Kind != yaml.ScalarNode {
				return nil, malformed("line %d: variable name must be a scalar", key.Line)
			}
			names = append(names, key.Value)
		}
	default:
		return nil, malformed(`line %d: "variables" must be a list or a mapping`, n.Line)
	}
	return names, nil
}

// nodeDefault converts a value node to a Default. Null is absent; scalars
// keep their source text; collections are rendered in YAML flow style.
func nodeDefault(n *yaml.Node) (varset.Default, error) {
	n = resolve(n)
	if n.Kind == yaml.ScalarNode {
		if n.ShortTag() == "!!null" {
			return varset.Absent(), nil
		}
		return varset.Value(n.Value), nil
	}

	flow := *n
	flow.Style = yaml.FlowStyle
	flow.HeadComment, flow.LineComment, flow.FootComment = "", "", ""
	out, err := yaml.Marshal(&flow)
	if err != nil {
		return varset.Default{}, errors.Wrapf(err, errors.KindMalformedSource, "line %d: cannot render value", n.Line)
	}
	return varset.Value(strings.TrimSpace(string(out))), nil
}
