package viewmodels

// ObservableNode is the structured view of one observable.
type ObservableNode struct {
	Title    string
	Operator string
	Children []*ObservableNode
	Object   *Object
}

func (n *ObservableNode) IsComposition() bool {
	return n.Operator != "" || n.Children != nil
}

type Object struct {
	Name       string
	Attributes []*Attribute
	Related    []*RelatedObject
}

type RelatedObject struct {
	Relation string
	Object   *Object
}

type Attribute struct {
	Value      string
	Definition string
	IOC        bool
	Shared     bool
}

// FlatRow is a flat table row with its group cell layout resolved for the
// current page.
type FlatRow struct {
	Value            string `json:"value"`
	Definition       string `json:"definition"`
	Object           string `json:"object"`
	Observable       string `json:"observable"`
	IOC              bool   `json:"ioc"`
	Shared           bool   `json:"shared"`
	Composed         string `json:"composed,omitempty"`
	ComposedOperator string `json:"composed_operator,omitempty"`
	ComposedLength   int    `json:"composed_length,omitempty"`
	GroupTitle       string `json:"group_title"`
	GroupCell        bool   `json:"group_cell"`
	RowSpan          int    `json:"row_span"`
}

type FlatPage struct {
	// Page is 0-based.
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
	Pages   int        `json:"pages"`
	Total   int        `json:"total"`
	Rows    []*FlatRow `json:"rows"`
}

func (p *FlatPage) HasPrev() bool { return p.Page > 0 }
func (p *FlatPage) HasNext() bool { return p.Page+1 < p.Pages }
