package page

import (
	"bytes"
	"strings"
	"testing"

	"github.com/TicketsBot/supporters-page/internal/dataset"
	"github.com/TicketsBot/supporters-page/internal/markup"
	"github.com/TicketsBot/supporters-page/internal/render"
	"github.com/TicketsBot/supporters-page/internal/scroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/net/html"
)

func buildDefault(t *testing.T) string {
	table, err := dataset.Default()
	require.NoError(t, err)

	doc, err := Build(render.NewRenderer(render.PolicyStrict, zaptest.NewLogger(t)), "Kata_web Supporters", table)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))
	return buf.String()
}

func TestBuildDefaultDataset(t *testing.T) {
	out := buildDefault(t)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"), "missing doctype: %.40q", out)
	assert.Contains(t, out, "<title>Kata_web Supporters</title>")
	assert.Equal(t, 7, strings.Count(out, `class="supporter-card"`))
	assert.Equal(t, 1, strings.Count(out, `class="hall-of-fame-card"`))
	assert.Equal(t, 6, strings.Count(out, render.NoSupportersText))
	assert.Equal(t, 1, strings.Count(out, "<script>"))
}

func TestBuildIsByteIdentical(t *testing.T) {
	assert.Equal(t, buildDefault(t), buildDefault(t))
}

func TestOutputRoundTripsThroughParser(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(buildDefault(t)))
	require.NoError(t, err)

	supporters := markup.ElementByID(doc, render.SupportersContainerID)
	require.NotNil(t, supporters)
	cards := markup.Children(supporters)
	require.Len(t, cards, 7)
	assert.Contains(t, markup.TextContent(cards[0]), "Supporters: Jerjar")

	for _, link := range scroll.Audit(doc) {
		assert.False(t, link.Dangling(), "dangling link to #%s", link.Fragment)
	}
}

func TestSkeletonContainers(t *testing.T) {
	doc := Skeleton("Supporters")

	assert.NotNil(t, markup.ElementByID(doc, render.SupportersContainerID))
	assert.NotNil(t, markup.ElementByID(doc, render.HallOfFameContainerID))
	assert.NotNil(t, markup.ElementByID(doc, SupportersSectionID))
	assert.NotNil(t, markup.ElementByID(doc, HallOfFameSectionID))
	assert.NotNil(t, Body(doc))
}
