package observable

const (
	NoObjectsDefined    = "No objects were defined"
	NoAttributesDefined = "No attributes were defined"
)

// FlatRow is one display row of the flat observable table. A zero
// ComposedLength means the row does not belong to a composition.
type FlatRow struct {
	Value            string `json:"value,omitempty"`
	Definition       string `json:"definition,omitempty"`
	IOC              Flag   `json:"ioc"`
	Shared           Flag   `json:"shared"`
	Object           string `json:"object,omitempty"`
	Observable       string `json:"observable,omitempty"`
	Composed         string `json:"composed,omitempty"`
	ComposedOperator string `json:"composedoperator,omitempty"`
	ComposedLength   int    `json:"composedlength,omitempty"`
}

// Flatten walks the observable trees left to right and emits one row per
// attribute. Composition context is not carried past a related object.
func Flatten(nodes []Node) []*FlatRow {
	var rows []*FlatRow
	for _, n := range nodes {
		rows = flattenNode(rows, n, nil)
	}
	return rows
}

func flattenNode(rows []*FlatRow, n Node, enclosing *Composition) []*FlatRow {
	switch node := n.(type) {
	case *Composition:
		for _, child := range node.Observables {
			rows = flattenNode(rows, child, node)
		}
	case *Leaf:
		if node.Object == nil {
			return append(rows, &FlatRow{Observable: node.Title, Object: NoObjectsDefined})
		}
		rows = flattenObject(rows, node.Object, node, enclosing)
	}
	return rows
}

func flattenObject(rows []*FlatRow, obj *Object, leaf *Leaf, enclosing *Composition) []*FlatRow {
	if len(obj.Attributes) == 0 {
		rows = append(rows, &FlatRow{
			Observable: leaf.Title,
			Object:     obj.Definition.Name,
			Value:      NoAttributesDefined,
		})
	}
	for _, attr := range obj.Attributes {
		row := &FlatRow{
			Value:      attr.Value,
			Definition: attr.Definition.Name,
			IOC:        attr.IOC,
			Shared:     attr.Shared,
			Object:     obj.Definition.Name,
			Observable: leaf.Title,
		}
		if enclosing != nil {
			row.Composed = enclosing.Title
			row.ComposedOperator = enclosing.Operator
			row.ComposedLength = len(enclosing.Observables)
		}
		rows = append(rows, row)
	}
	for _, rel := range obj.RelatedObjects {
		if rel.Object == nil {
			continue
		}
		rows = flattenObject(rows, rel.Object, leaf, nil)
	}
	return rows
}

// GroupTitle is the label of the group cell a row belongs to.
func (r *FlatRow) GroupTitle() string {
	if r.ComposedOperator != "" {
		if r.Composed != "" {
			return r.Composed
		}
		return "Composed"
	}
	if r.Observable != "" {
		return r.Observable
	}
	return "Observable"
}
