package render

import (
	"fmt"

	"github.com/TicketsBot/supporters-page/internal/markup"
	"github.com/TicketsBot/supporters-page/pkg/model"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	SupportersContainerID = "supporters-list"
	HallOfFameContainerID = "hall-of-fame-list"
)

// Policy decides what happens when a target container is missing from the
// document.
type Policy int

const (
	// PolicyGuarded skips the render pass without touching the document.
	PolicyGuarded Policy = iota
	// PolicyStrict fails the render pass with a MissingContainerError.
	PolicyStrict
)

func (p Policy) String() string {
	switch p {
	case PolicyGuarded:
		return "guarded"
	case PolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

type MissingContainerError struct {
	ID string
}

func (e *MissingContainerError) Error() string {
	return fmt.Sprintf("container #%s not found", e.ID)
}

type Renderer struct {
	policy Policy
	logger *zap.Logger
}

func NewRenderer(policy Policy, logger *zap.Logger) *Renderer {
	return &Renderer{
		policy: policy,
		logger: logger,
	}
}

// Render runs the supporters pass and then the Hall of Fame pass. The first
// error aborts the rest.
func (r *Renderer) Render(root *html.Node, table model.DataTable) error {
	if err := r.RenderSupporters(root, table.Tiers); err != nil {
		return err
	}

	return r.RenderHallOfFame(root, table.HallOfFame)
}

func (r *Renderer) RenderSupporters(root *html.Node, tiers []model.Tier) error {
	container, err := r.container(root, SupportersContainerID)
	if err != nil || container == nil {
		return err
	}

	for _, tier := range tiers {
		markup.Append(container, TierCard(tier))
	}

	r.logger.Debug("Rendered supporters", zap.Int("tiers", len(tiers)))
	return nil
}

func (r *Renderer) RenderHallOfFame(root *html.Node, entries []model.HallOfFameEntry) error {
	container, err := r.container(root, HallOfFameContainerID)
	if err != nil || container == nil {
		return err
	}

	for _, entry := range entries {
		markup.Append(container, HallOfFameCard(entry))
	}

	r.logger.Debug("Rendered hall of fame", zap.Int("entries", len(entries)))
	return nil
}

// container returns (nil, nil) when a guarded lookup misses.
func (r *Renderer) container(root *html.Node, id string) (*html.Node, error) {
	if container := markup.ElementByID(root, id); container != nil {
		return container, nil
	}

	if r.policy == PolicyStrict {
		return nil, &MissingContainerError{ID: id}
	}

	r.logger.Debug("Container not found, skipping", zap.String("id", id))
	return nil, nil
}
