package observable

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type compositionJSON struct {
	Identifier  string            `json:"identifier"`
	Title       string            `json:"title"`
	Operator    string            `json:"operator"`
	Observables []json.RawMessage `json:"observables"`
}

type observableJSON struct {
	Identifier  string           `json:"identifier"`
	Title       string           `json:"title"`
	Object      *objectJSON      `json:"object"`
	Composition *compositionJSON `json:"observable_composition"`
}

type relatedObjectJSON struct {
	Relation string      `json:"relation"`
	Object   *objectJSON `json:"object"`
}

type objectJSON struct {
	Identifier     string              `json:"identifier"`
	Definition     Definition          `json:"definition"`
	Attributes     []attributeJSON     `json:"attributes"`
	RelatedObjects []relatedObjectJSON `json:"related_objects"`
}

type attributeJSON struct {
	Identifier string     `json:"identifier"`
	Value      any        `json:"value"`
	Definition Definition `json:"definition"`
	IOC        Flag       `json:"ioc"`
	Shared     Flag       `json:"shared"`
}

// Decode parses a JSON array of observables into nodes.
func Decode(data []byte) ([]Node, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("observable: decode list: %w", err)
	}
	return decodeList(raw)
}

// DecodeNode parses one observable.
func DecodeNode(data []byte) (Node, error) {
	var o observableJSON
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("observable: decode: %w", err)
	}
	return o.toNode()
}

func decodeList(raw []json.RawMessage) ([]Node, error) {
	nodes := make([]Node, 0, len(raw))
	for i, item := range raw {
		node, err := DecodeNode(item)
		if err != nil {
			return nil, fmt.Errorf("observable[%d]: %w", i, err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// A composition takes precedence over an object when the backend sends both.
func (o *observableJSON) toNode() (Node, error) {
	if o.Composition != nil {
		children, err := decodeList(o.Composition.Observables)
		if err != nil {
			return nil, err
		}
		title := o.Composition.Title
		if title == "" {
			title = o.Title
		}
		return &Composition{
			Identifier:  o.Composition.Identifier,
			Title:       title,
			Operator:    o.Composition.Operator,
			Observables: children,
		}, nil
	}
	leaf := &Leaf{Identifier: o.Identifier, Title: o.Title}
	if o.Object != nil {
		leaf.Object = o.Object.toObject()
	}
	return leaf, nil
}

func (o *objectJSON) toObject() *Object {
	obj := &Object{
		Identifier: o.Identifier,
		Definition: o.Definition,
		Attributes: make([]Attribute, 0, len(o.Attributes)),
	}
	for _, a := range o.Attributes {
		obj.Attributes = append(obj.Attributes, Attribute{
			Identifier: a.Identifier,
			Value:      valueString(a.Value),
			Definition: a.Definition,
			IOC:        a.IOC,
			Shared:     a.Shared,
		})
	}
	for _, rel := range o.RelatedObjects {
		if rel.Object == nil {
			continue
		}
		obj.RelatedObjects = append(obj.RelatedObjects, RelatedObject{
			Relation: rel.Relation,
			Object:   rel.Object.toObject(),
		})
	}
	return obj
}

func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
