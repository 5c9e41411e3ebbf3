// Package observable models the observable tree of an event as returned by
// GET /event/{id}/observable?complete=true&inflated=true.
package observable

// Node is either a *Composition or a *Leaf.
type Node interface {
	NodeTitle() string
	isNode()
}

// Composition groups observables under a logical operator.
type Composition struct {
	Identifier  string
	Title       string
	Operator    string
	Observables []Node
}

func (c *Composition) NodeTitle() string { return c.Title }
func (*Composition) isNode()             {}

// Leaf is an observable carrying at most one object.
type Leaf struct {
	Identifier string
	Title      string
	Object     *Object
}

func (l *Leaf) NodeTitle() string { return l.Title }
func (*Leaf) isNode()             {}

type Definition struct {
	Identifier string `json:"identifier,omitempty"`
	Name       string `json:"name"`
}

type Object struct {
	Identifier     string
	Definition     Definition
	Attributes     []Attribute
	RelatedObjects []RelatedObject
}

type RelatedObject struct {
	Relation string
	Object   *Object
}

type Attribute struct {
	Identifier string
	Value      string
	Definition Definition
	IOC        Flag
	Shared     Flag
}
