package views

import (
	"html/template"
	"io"
)

// Section is one named container of a page.
type Section struct {
	ID   string
	HTML template.HTML
}

// Page is an HTML document made of the containers its route declares.
// Loaders skip containers the page does not have.
type Page struct {
	Title    string
	SignedIn bool
	IsAdmin  bool

	order    []string
	sections map[string]template.HTML
}

func NewPage(title string, containers ...string) *Page {
	p := &Page{
		Title:    title,
		sections: make(map[string]template.HTML, len(containers)),
	}
	for _, id := range containers {
		if _, dup := p.sections[id]; dup {
			continue
		}
		p.order = append(p.order, id)
		p.sections[id] = ""
	}
	return p
}

// Has reports whether the page declares container id.
func (p *Page) Has(id string) bool {
	_, ok := p.sections[id]
	return ok
}

// Set replaces the content of a declared container. It reports false, and
// does nothing, for undeclared ones.
func (p *Page) Set(id string, html template.HTML) bool {
	if !p.Has(id) {
		return false
	}
	p.sections[id] = html
	return true
}

// Get returns the current content of container id.
func (p *Page) Get(id string) template.HTML {
	return p.sections[id]
}

// Sections returns the containers in declaration order.
func (p *Page) Sections() []Section {
	out := make([]Section, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, Section{ID: id, HTML: p.sections[id]})
	}
	return out
}

func (p *Page) Render(w io.Writer) error {
	return templates.ExecuteTemplate(w, "layout", p)
}
