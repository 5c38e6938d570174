package render

import (
	"strings"

	"github.com/TicketsBot/supporters-page/internal/markup"
	"github.com/TicketsBot/supporters-page/pkg/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	NoSupportersText = "No supporters yet"
	NameSeparator    = ", "
)

// TierCard builds the block for a single tier: heading, optional price,
// supporters and optional perks.
func TierCard(tier model.Tier) *html.Node {
	card := markup.Element(atom.Div, markup.Class("supporter-card"),
		markup.Element(atom.H3, nil, markup.Text(tier.Name)),
	)

	if tier.Price != "" {
		markup.Append(card, markup.Element(atom.P, markup.Class("price"),
			markup.Element(atom.Strong, nil, markup.Text(tier.Price)),
		))
	}

	markup.Append(card, supporters(tier)...)

	if len(tier.Perks) > 0 {
		list := markup.Element(atom.Ul, markup.Class("perks"))
		for _, perk := range tier.Perks {
			markup.Append(list, markup.Element(atom.Li, nil, markup.Text(perk)))
		}
		markup.Append(card, list)
	}

	return card
}

func supporters(tier model.Tier) []*html.Node {
	switch {
	case len(tier.Supporters) == 0:
		return []*html.Node{labelled("supporters", "Supporters:", NoSupportersText)}
	case !tier.HasDetailedSupporters():
		return []*html.Node{labelled("supporters", "Supporters:", strings.Join(tier.SupporterNames(), NameSeparator))}
	}

	nodes := []*html.Node{
		markup.Element(atom.P, markup.Class("supporters"),
			markup.Element(atom.Strong, nil, markup.Text("Supporters:")),
		),
	}
	for _, supporter := range tier.Supporters {
		nodes = append(nodes, supporterDetails(supporter))
	}
	return nodes
}

func supporterDetails(s model.Supporter) *html.Node {
	details := markup.Element(atom.Div, markup.Class("supporter-details"),
		labelled("", "Name:", s.Name),
	)

	if s.Email != "" {
		markup.Append(details, markup.Element(atom.P, nil,
			markup.Element(atom.Strong, nil, markup.Text("Email:")),
			markup.Text(" "),
			markup.Element(atom.A, markup.Attrs(markup.Attr("href", "mailto:"+s.Email)), markup.Text(s.Email)),
		))
	}

	if s.JoinDate != "" {
		markup.Append(details, joined(s.JoinDate))
	}

	if s.TotalSupported != "" {
		markup.Append(details, labelled("", "Total Supported:", s.TotalSupported))
	}

	return details
}

// HallOfFameCard builds the card for a Hall of Fame entry, showing only the
// fields the entry actually has.
func HallOfFameCard(entry model.HallOfFameEntry) *html.Node {
	card := markup.Element(atom.Div, markup.Class("hall-of-fame-card"),
		markup.Element(atom.H3, nil, markup.Text(entry.Name)),
	)

	if entry.Contribution != "" {
		markup.Append(card, labelled("", "Contribution:", entry.Contribution))
	}

	if entry.Tier != "" {
		markup.Append(card, labelled("", "Tier:", entry.Tier))
	}

	if entry.JoinDate != "" {
		markup.Append(card, joined(entry.JoinDate))
	}

	if entry.TotalSupported != "" {
		markup.Append(card, labelled("", "Total Supported:", entry.TotalSupported))
	}

	return card
}

// labelled renders <p><strong>label</strong> value</p>.
func labelled(class, label, value string) *html.Node {
	var attrs []html.Attribute
	if class != "" {
		attrs = markup.Class(class)
	}

	return markup.Element(atom.P, attrs,
		markup.Element(atom.Strong, nil, markup.Text(label)),
		markup.Text(" "+value),
	)
}

func joined(date string) *html.Node {
	return markup.Element(atom.P, nil,
		markup.Element(atom.Strong, nil, markup.Text("Joined:")),
		markup.Text(" "),
		markup.Element(atom.Time, markup.Attrs(markup.Attr("datetime", date)), markup.Text(date)),
	)
}
