package types

import "net/url"

// PageContext carries the request bound data every page needs to render its
// chrome.
type PageContext struct {
	URL      *url.URL
	Title    string
	NavItems []NavigationItem
}

func (p *PageContext) GetURL() *url.URL {
	return p.URL
}

func (p *PageContext) Path() string {
	if p.URL == nil {
		return ""
	}
	return p.URL.Path
}

func (p *PageContext) WithTitle(title string) *PageContext {
	return &PageContext{
		URL:      p.URL,
		Title:    title,
		NavItems: p.NavItems,
	}
}
