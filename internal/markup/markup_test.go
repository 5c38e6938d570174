package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestElementEscapesText(t *testing.T) {
	n := Element(atom.P, Class("note"), Text(`<script>alert("x")</script> & co`))

	out, err := RenderString(n)
	require.NoError(t, err)
	assert.Equal(t, `<p class="note">&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt; &amp; co</p>`, out)
}

func TestAppendSkipsNil(t *testing.T) {
	n := Element(atom.Ul, nil, nil, Element(atom.Li, nil, Text("a")), nil)

	out, err := RenderString(n)
	require.NoError(t, err)
	assert.Equal(t, `<ul><li>a</li></ul>`, out)
}

func TestElementByID(t *testing.T) {
	target := Element(atom.Div, ID("target"))
	root := Element(atom.Body, nil,
		Element(atom.Section, ID("outer"), target),
		Element(atom.Div, ID("target")),
	)

	assert.Same(t, target, ElementByID(root, "target"))
	assert.Nil(t, ElementByID(root, "missing"))
	assert.Nil(t, ElementByID(root, ""))
	assert.Nil(t, ElementByID(nil, "target"))
}

func TestTextContentAndChildren(t *testing.T) {
	n := Element(atom.Div, nil,
		Element(atom.H3, nil, Text("Go Enthusiast")),
		Text(" "),
		Element(atom.P, nil, Element(atom.Strong, nil, Text("CA$3 / month"))),
	)

	assert.Equal(t, "Go Enthusiast CA$3 / month", TextContent(n))
	children := Children(n)
	require.Len(t, children, 2)
	assert.Equal(t, atom.H3, children[0].DataAtom)
	assert.Equal(t, atom.P, children[1].DataAtom)
}

func TestGetAttr(t *testing.T) {
	n := Element(atom.A, Attrs(Attr("href", "#top"), Attr("class", "nav")))

	val, ok := GetAttr(n, "href")
	assert.True(t, ok)
	assert.Equal(t, "#top", val)

	_, ok = GetAttr(n, "id")
	assert.False(t, ok)

	assert.Equal(t, html.ElementNode, n.Type)
}
