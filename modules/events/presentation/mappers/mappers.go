package mappers

import (
	"time"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/modules/events/domain/observable"
	"github.com/ce1sus/ce1sus-console/modules/events/presentation/viewmodels"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t, dateLayout)
}

func GroupToViewModel(g event.Group) viewmodels.Group {
	return viewmodels.Group{ID: g.Identifier, Name: g.Name}
}

func GroupsToViewModels(groups []event.Group) []viewmodels.Group {
	result := make([]viewmodels.Group, 0, len(groups))
	for _, g := range groups {
		result = append(result, GroupToViewModel(g))
	}
	return result
}

func CommentToViewModel(eventID string, c *event.Comment) *viewmodels.Comment {
	return &viewmodels.Comment{
		ID:           c.Identifier,
		EventID:      eventID,
		Comment:      c.Comment,
		CreatorGroup: GroupToViewModel(c.CreatorGroup),
		CreatedAt:    formatTime(c.CreatedAt, dateTimeLayout),
		ModifiedOn:   formatTime(c.ModifiedOn, dateTimeLayout),
	}
}

func EventToViewModel(e *event.Event) *viewmodels.Event {
	comments := make([]*viewmodels.Comment, 0, len(e.Comments))
	for _, c := range e.Comments {
		comments = append(comments, CommentToViewModel(e.Identifier, c))
	}
	return &viewmodels.Event{
		ID:              e.Identifier,
		UUID:            e.UUID,
		Title:           e.Title,
		Description:     e.Description,
		Status:          e.Status,
		Risk:            e.Risk,
		Analysis:        e.Analysis,
		TLP:             e.TLP,
		TLPColour:       event.TLPColour(e.TLP),
		Published:       e.Published,
		Shared:          e.Shared,
		Validated:       e.Validated,
		FirstSeen:       formatTimePtr(e.FirstSeen),
		LastSeen:        formatTimePtr(e.LastSeen),
		CreatedAt:       formatTime(e.CreatedAt, dateTimeLayout),
		ModifiedOn:      formatTime(e.ModifiedOn, dateTimeLayout),
		CreatorGroup:    GroupToViewModel(e.CreatorGroup),
		ModifierGroup:   GroupToViewModel(e.ModifierGroup),
		ObservableCount: e.ObservableCount,
		Comments:        comments,
		Permissions: viewmodels.Permissions{
			CanAdd:      e.Permissions.CanAdd,
			CanModify:   e.Permissions.CanModify,
			CanValidate: e.Permissions.CanValidate,
			CanDelete:   e.Permissions.CanDelete,
			CanProcess:  e.Permissions.CanProcess,
		},
	}
}

func EventToListItem(e *event.Event) *viewmodels.EventListItem {
	return &viewmodels.EventListItem{
		ID:           e.Identifier,
		Title:        e.Title,
		Status:       e.Status,
		Risk:         e.Risk,
		Analysis:     e.Analysis,
		TLP:          e.TLP,
		TLPColour:    event.TLPColour(e.TLP),
		CreatorGroup: e.CreatorGroup.Name,
		CreatedAt:    formatTime(e.CreatedAt, dateTimeLayout),
		Validated:    e.Validated,
	}
}

func EventsToListItems(events []*event.Event) []*viewmodels.EventListItem {
	result := make([]*viewmodels.EventListItem, 0, len(events))
	for _, e := range events {
		result = append(result, EventToListItem(e))
	}
	return result
}

// NewPagination builds the pager of a listing. page is 1-based.
func NewPagination(baseURL string, page, perPage, total int) viewmodels.Pagination {
	pages := 0
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return viewmodels.Pagination{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		BaseURL: baseURL,
	}
}

func ObjectToViewModel(o *observable.Object) *viewmodels.Object {
	vm := &viewmodels.Object{
		Name:       o.Definition.Name,
		Attributes: make([]*viewmodels.Attribute, 0, len(o.Attributes)),
	}
	for _, a := range o.Attributes {
		vm.Attributes = append(vm.Attributes, &viewmodels.Attribute{
			Value:      a.Value,
			Definition: a.Definition.Name,
			IOC:        bool(a.IOC),
			Shared:     bool(a.Shared),
		})
	}
	for _, rel := range o.RelatedObjects {
		if rel.Object == nil {
			continue
		}
		vm.Related = append(vm.Related, &viewmodels.RelatedObject{
			Relation: rel.Relation,
			Object:   ObjectToViewModel(rel.Object),
		})
	}
	return vm
}

func ObservableToViewModel(n observable.Node) *viewmodels.ObservableNode {
	switch node := n.(type) {
	case *observable.Composition:
		vm := &viewmodels.ObservableNode{
			Title:    node.Title,
			Operator: node.Operator,
			Children: make([]*viewmodels.ObservableNode, 0, len(node.Observables)),
		}
		for _, child := range node.Observables {
			vm.Children = append(vm.Children, ObservableToViewModel(child))
		}
		return vm
	case *observable.Leaf:
		vm := &viewmodels.ObservableNode{Title: node.Title}
		if node.Object != nil {
			vm.Object = ObjectToViewModel(node.Object)
		}
		return vm
	default:
		return &viewmodels.ObservableNode{}
	}
}

func ObservablesToViewModels(nodes []observable.Node) []*viewmodels.ObservableNode {
	result := make([]*viewmodels.ObservableNode, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, ObservableToViewModel(n))
	}
	return result
}

// FlatPage flattens the observables and resolves the group cells of the
// requested 0-based page.
func FlatPage(nodes []observable.Node, page, perPage int) *viewmodels.FlatPage {
	table := observable.NewFlatTable(observable.Flatten(nodes), page, perPage)
	return FlatTableToViewModel(table)
}

func FlatTableToViewModel(table *observable.FlatTable) *viewmodels.FlatPage {
	vm := &viewmodels.FlatPage{
		Page:    table.Page,
		PerPage: table.PerPage,
		Pages:   table.NumPages(),
		Total:   len(table.Rows),
		Rows:    make([]*viewmodels.FlatRow, 0, table.PerPage),
	}
	offset := table.Offset()
	for i, row := range table.Visible() {
		index := offset + i
		vm.Rows = append(vm.Rows, &viewmodels.FlatRow{
			Value:            row.Value,
			Definition:       row.Definition,
			Object:           row.Object,
			Observable:       row.Observable,
			IOC:              bool(row.IOC),
			Shared:           bool(row.Shared),
			Composed:         row.Composed,
			ComposedOperator: row.ComposedOperator,
			ComposedLength:   row.ComposedLength,
			GroupTitle:       row.GroupTitle(),
			GroupCell:        table.WriteGroupCell(index),
			RowSpan:          table.RowSpan(index),
		})
	}
	return vm
}
