// Package layouts renders the page chrome around every console page.
package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ce1sus/ce1sus-console/components/base"
	"github.com/ce1sus/ce1sus-console/modules/core/presentation/assets"
	"github.com/ce1sus/ce1sus-console/pkg/composables"
	"github.com/ce1sus/ce1sus-console/pkg/notify"
	"github.com/ce1sus/ce1sus-console/pkg/types"
)

type AuthenticatedProps struct {
	Title        string
	Notification *notify.Message
	// Nil hides the tab bar.
	Tabs *base.TabBarProps
}

func writeNav(h *base.HTML, items []types.NavigationItem, path string) {
	h.Raw(`<nav class="navbar"><a class="brand" href="/events/all">ce1sus</a><ul class="nav">`)
	for _, item := range items {
		class := ""
		if item.IsActive(path) {
			class = "active"
		}
		h.Raw(`<li`).Attr("class", class).Raw(`><a`).Attr("href", item.Href).Raw(">").Text(item.Name).Raw(`</a>`)
		if len(item.Children) > 0 {
			h.Raw(`<ul class="dropdown">`)
			for _, child := range item.Children {
				h.Raw(`<li><a`).Attr("href", child.Href).Raw(">").Text(child.Name).Raw(`</a></li>`)
			}
			h.Raw(`</ul>`)
		}
		h.Raw(`</li>`)
	}
	h.Raw(`</ul></nav>`)
}

// Authenticated wraps the children of ctx in the console chrome.
func Authenticated(props AuthenticatedProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var (
			navItems []types.NavigationItem
			path     string
		)
		if pageCtx, ok := composables.TryUsePageCtx(ctx); ok {
			navItems = pageCtx.NavItems
			path = pageCtx.Path()
		}
		title := "ce1sus"
		if props.Title != "" {
			title = props.Title + " - ce1sus"
		}

		h := base.NewHTML(w).
			Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`).Text(title).Raw(`</title>`).
			Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`).
			Raw(`<link rel="stylesheet"`).Attr("href", assets.StylesheetPath()).Raw(`></head><body>`)
		writeNav(h, navItems, path)
		h.Raw(`<main class="container">`).Component(ctx, base.Alert(props.Notification))
		if props.Tabs != nil {
			if props.Tabs.Active == "" {
				props.Tabs.Active = path
			}
			h.Component(ctx, base.TabBar(props.Tabs))
		}
		h.Raw(`<div class="tab-content">`).Component(ctx, templ.GetChildren(ctx)).Raw(`</div></main></body></html>`)
		return h.Err()
	})
}

// Page renders content inside the authenticated layout.
func Page(props AuthenticatedProps, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Authenticated(props).Render(templ.WithChildren(ctx, content), w)
	})
}
