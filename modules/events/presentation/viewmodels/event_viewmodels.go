package viewmodels

type Group struct {
	ID   string
	Name string
}

type Permissions struct {
	CanAdd      bool
	CanModify   bool
	CanValidate bool
	CanDelete   bool
	CanProcess  bool
}

type Event struct {
	ID              string
	UUID            string
	Title           string
	Description     string
	Status          string
	Risk            string
	Analysis        string
	TLP             string
	TLPColour       string
	Published       bool
	Shared          bool
	Validated       bool
	FirstSeen       string
	LastSeen        string
	CreatedAt       string
	ModifiedOn      string
	CreatorGroup    Group
	ModifierGroup   Group
	ObservableCount int
	Comments        []*Comment
	Permissions     Permissions
}

type Comment struct {
	ID           string
	EventID      string
	Comment      string
	CreatorGroup Group
	CreatedAt    string
	ModifiedOn   string
}

// EventListItem is one row of the events and validation listings.
type EventListItem struct {
	ID           string
	Title        string
	Status       string
	Risk         string
	Analysis     string
	TLP          string
	TLPColour    string
	CreatorGroup string
	CreatedAt    string
	Validated    bool
}

type Pagination struct {
	// Page is 1-based.
	Page    int
	PerPage int
	Total   int
	Pages   int
	BaseURL string
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.Pages }
