package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(title, objectName string, values ...string) *Leaf {
	obj := &Object{Definition: Definition{Name: objectName}, Attributes: []Attribute{}}
	for _, v := range values {
		obj.Attributes = append(obj.Attributes, Attribute{Value: v, Definition: Definition{Name: "ipv4_addr"}})
	}
	return &Leaf{Title: title, Object: obj}
}

func TestFlatten_SingleAttribute(t *testing.T) {
	nodes, err := Decode([]byte(`[{"title":"O1","object":{"definition":{"name":"X"},"attributes":[{"value":"v1"}],"related_objects":[]}}]`))
	require.NoError(t, err)

	rows := Flatten(nodes)

	require.Equal(t, []*FlatRow{{Value: "v1", Object: "X", Observable: "O1"}}, rows)
}

func TestFlatten_EmptyAttributesPlaceholder(t *testing.T) {
	rows := Flatten([]Node{leaf("O1", "file")})

	require.Len(t, rows, 1)
	assert.Equal(t, &FlatRow{Observable: "O1", Object: "file", Value: NoAttributesDefined}, rows[0])
}

func TestFlatten_LeafWithoutObject(t *testing.T) {
	rows := Flatten([]Node{&Leaf{Title: "empty"}})

	require.Len(t, rows, 1)
	assert.Equal(t, &FlatRow{Observable: "empty", Object: NoObjectsDefined}, rows[0])
}

func TestFlatten_Composition(t *testing.T) {
	comp := &Composition{
		Title:    "dropper",
		Operator: "OR",
		Observables: []Node{
			leaf("a", "domain", "evil.test"),
			leaf("b", "domain", "bad.test"),
			leaf("c", "domain", "worse.test"),
		},
	}

	rows := Flatten([]Node{comp})

	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, 3, row.ComposedLength, i)
		assert.Equal(t, "dropper", row.Composed, i)
		assert.Equal(t, "OR", row.ComposedOperator, i)
	}
	assert.Equal(t, []string{"a", "b", "c"}, []string{rows[0].Observable, rows[1].Observable, rows[2].Observable})
}

func TestFlatten_RelatedObjectsDropComposition(t *testing.T) {
	child := &Object{
		Definition: Definition{Name: "email"},
		Attributes: []Attribute{{Value: "x@evil.test"}},
	}
	parent := leaf("mail", "email", "subject")
	parent.Object.RelatedObjects = []RelatedObject{{Relation: "contains", Object: child}}
	comp := &Composition{Title: "campaign", Operator: "AND", Observables: []Node{parent, leaf("other", "file", "a.exe")}}

	rows := Flatten([]Node{comp})

	require.Len(t, rows, 3)
	assert.Equal(t, 2, rows[0].ComposedLength)
	assert.Equal(t, "mail", rows[1].Observable, "related rows keep the observable title")
	assert.Equal(t, "x@evil.test", rows[1].Value)
	assert.Zero(t, rows[1].ComposedLength)
	assert.Empty(t, rows[1].Composed)
	assert.Empty(t, rows[1].ComposedOperator)
	assert.Equal(t, "other", rows[2].Observable)
}

func TestFlatten_IsRestartable(t *testing.T) {
	nodes := []Node{
		&Composition{Operator: "OR", Observables: []Node{leaf("a", "x", "1", "2")}},
		&Leaf{Title: "b"},
	}
	assert.Equal(t, Flatten(nodes), Flatten(nodes))
	assert.Empty(t, Flatten(nil))
}

func TestFlatRow_GroupTitle(t *testing.T) {
	tests := []struct {
		row  FlatRow
		want string
	}{
		{row: FlatRow{ComposedOperator: "OR", Composed: "dropper"}, want: "dropper"},
		{row: FlatRow{ComposedOperator: "OR"}, want: "Composed"},
		{row: FlatRow{Observable: "O1"}, want: "O1"},
		{row: FlatRow{}, want: "Observable"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.row.GroupTitle())
	}
}
