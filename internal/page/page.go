package page

import (
	_ "embed"
	"io"

	"github.com/TicketsBot/supporters-page/internal/markup"
	"github.com/TicketsBot/supporters-page/internal/render"
	"github.com/TicketsBot/supporters-page/internal/scroll"
	"github.com/TicketsBot/supporters-page/pkg/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//go:embed styles.css
var styles string

const (
	SupportersSectionID = "supporters"
	HallOfFameSectionID = "hall-of-fame"
)

// Skeleton returns an empty document with the nav and the two containers the
// renderer fills in.
func Skeleton(title string) *html.Node {
	head := markup.Element(atom.Head, nil,
		markup.Element(atom.Meta, markup.Attrs(markup.Attr("charset", "utf-8"))),
		markup.Element(atom.Meta, markup.Attrs(
			markup.Attr("name", "viewport"),
			markup.Attr("content", "width=device-width, initial-scale=1"),
		)),
		markup.Element(atom.Title, nil, markup.Text(title)),
		markup.Element(atom.Style, nil, markup.Text(styles)),
	)

	body := markup.Element(atom.Body, nil,
		markup.Element(atom.Nav, nil,
			navLink(SupportersSectionID, "Supporters"),
			navLink(HallOfFameSectionID, "Hall of Fame"),
		),
		markup.Element(atom.Main, nil,
			section(SupportersSectionID, "Supporters", render.SupportersContainerID),
			section(HallOfFameSectionID, "Hall of Fame", render.HallOfFameContainerID),
		),
	)

	doc := &html.Node{Type: html.DocumentNode}
	markup.Append(doc,
		&html.Node{Type: html.DoctypeNode, Data: "html"},
		markup.Element(atom.Html, markup.Attrs(markup.Attr("lang", "en")), head, body),
	)
	return doc
}

// Build assembles the full page: skeleton, both render passes, then the
// scroll handler at the end of the body.
func Build(r *render.Renderer, title string, table model.DataTable) (*html.Node, error) {
	doc := Skeleton(title)
	if err := r.Render(doc, table); err != nil {
		return nil, err
	}

	markup.Append(Body(doc), scroll.Script())
	return doc, nil
}

func Write(w io.Writer, doc *html.Node) error {
	return markup.Render(w, doc)
}

// Body returns the <body> element of doc, or nil.
func Body(doc *html.Node) *html.Node {
	var body *html.Node
	markup.Walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return false
		}
		return true
	})
	return body
}

func navLink(id, label string) *html.Node {
	return markup.Element(atom.A, markup.Attrs(markup.Attr("href", "#"+id)), markup.Text(label))
}

func section(id, heading, containerID string) *html.Node {
	return markup.Element(atom.Section, markup.ID(id),
		markup.Element(atom.H2, nil, markup.Text(heading)),
		markup.Element(atom.Div, markup.ID(containerID)),
	)
}
