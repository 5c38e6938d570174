package publisher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/TicketsBot/supporters-page/internal/config"
	"github.com/TicketsBot/supporters-page/internal/page"
	"github.com/TicketsBot/supporters-page/internal/render"
	"github.com/TicketsBot/supporters-page/internal/scroll"
	"github.com/TicketsBot/supporters-page/pkg/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const tracerName = "github.com/TicketsBot/supporters-page/internal/publisher"

var ErrDanglingLinks = errors.New("page has links to missing elements")

type Publisher struct {
	config   config.Config
	logger   *zap.Logger
	table    model.DataTable
	renderer *render.Renderer
	tracer   trace.Tracer
}

func New(config config.Config, logger *zap.Logger, table model.DataTable) *Publisher {
	policy := render.PolicyGuarded
	if config.StrictContainers {
		policy = render.PolicyStrict
	}

	return &Publisher{
		config:   config,
		logger:   logger,
		table:    table,
		renderer: render.NewRenderer(policy, logger),
		tracer:   otel.Tracer(tracerName),
	}
}

// RunOnce renders the page and replaces the file at OutputPath.
func (p *Publisher) RunOnce(ctx context.Context) (err error) {
	ctx, span := p.tracer.Start(ctx, "publisher.RunOnce", trace.WithAttributes(
		attribute.String("output_path", p.config.OutputPath),
		attribute.Int("tiers", len(p.table.Tiers)),
		attribute.Int("hall_of_fame", len(p.table.HallOfFame)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	p.logger.Debug("Rendering page")

	start := time.Now()
	defer func() {
		duration := time.Since(start)
		if duration > (p.config.ExecutionTimeout / 2.0) {
			p.logger.Warn("Execution took more than 50% of the timeout", zap.Duration("duration", duration))
		}
	}()

	var buf bytes.Buffer
	if err := p.build(ctx, &buf); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeFile(p.config.OutputPath, buf.Bytes()); err != nil {
		p.logger.Error("Failed to write page", zap.String("path", p.config.OutputPath), zap.Error(err))
		return err
	}

	p.logger.Info("Page written", zap.String("path", p.config.OutputPath), zap.Int("bytes", buf.Len()))
	return nil
}

// Check audits the in-page links of the page published at OutputPath, which
// may have been edited or produced by an older build.
func (p *Publisher) Check(ctx context.Context) (links []scroll.Link, err error) {
	_, span := p.tracer.Start(ctx, "publisher.Check", trace.WithAttributes(
		attribute.String("output_path", p.config.OutputPath),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	f, err := os.Open(p.config.OutputPath)
	if err != nil {
		p.logger.Error("Failed to open published page", zap.String("path", p.config.OutputPath), zap.Error(err))
		return nil, err
	}

	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.config.OutputPath, err)
	}

	links = scroll.Audit(doc)

	var dangling int
	for _, link := range links {
		if link.Dangling() {
			p.logger.Warn("Link target not found", zap.String("fragment", link.Fragment))
			dangling++
		}
	}

	p.logger.Info("Checked links", zap.String("path", p.config.OutputPath), zap.Int("count", len(links)), zap.Int("dangling", dangling))

	if dangling > 0 {
		return links, fmt.Errorf("%w: %d", ErrDanglingLinks, dangling)
	}

	return links, nil
}

func (p *Publisher) build(ctx context.Context, buf *bytes.Buffer) error {
	_, span := p.tracer.Start(ctx, "publisher.build")
	defer span.End()

	doc, err := page.Build(p.renderer, p.config.PageTitle, p.table)
	if err != nil {
		p.logger.Error("Failed to build page", zap.Error(err))
		return err
	}

	if err := page.Write(buf, doc); err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	return nil
}

// writeFile writes to a temporary file next to path and renames it over path,
// so readers never see a half-written page.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
