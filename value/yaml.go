package value

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// FromYAML converts the first document of a YAML stream into a Value.
// Mapping order is preserved; mapping keys must be scalars.
func FromYAML(data []byte) (Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Null(), nil
		}
		return Value{}, err
	}
	return FromYAMLNode(&doc)
}

// FromYAMLNode converts a decoded yaml.v3 node tree into a Value.
func FromYAMLNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return FromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(n.Alias)
	case yaml.SequenceNode:
		arr := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := FromYAMLNode(c)
			if err != nil {
				return Value{}, err
			}
			arr = append(arr, v)
		}
		return Value{kind: KindArray, arr: arr}, nil
	case yaml.MappingNode:
		o := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, vn := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("value: yaml line %d: mapping key must be a scalar", k.Line)
			}
			v, err := FromYAMLNode(vn)
			if err != nil {
				return Value{}, err
			}
			o.Set(k.Value, v)
		}
		return ObjectOf(o), nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return Value{}, fmt.Errorf("value: yaml line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func yamlScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}

// ToYAMLNode converts v into a yaml.v3 node tree, keeping object order.
// Empty object members are skipped.
func ToYAMLNode(v Value) (*yaml.Node, error) {
	switch v.kind {
	case KindEmpty, KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case KindBool, KindInt, KindFloat:
		b, err := Encode(v)
		if err != nil {
			return nil, err
		}
		tag := map[Kind]string{KindBool: "!!bool", KindInt: "!!int", KindFloat: "!!float"}[v.kind]
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(b)}, nil
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}, nil
	case KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.arr {
			c, err := ToYAMLNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		var err error
		v.obj.Range(func(k string, mv Value) bool {
			if mv.IsEmpty() {
				return true
			}
			var c *yaml.Node
			if c, err = ToYAMLNode(mv); err != nil {
				return false
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, c)
			return true
		})
		if err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("value: invalid kind %d", v.kind)
	}
}

// EncodeYAML renders v as a YAML document.
func EncodeYAML(v Value) ([]byte, error) {
	n, err := ToYAMLNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(n)
}
