package decor

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/orglyph/internal/config"
	"github.com/zjrosen/orglyph/internal/log"
	"github.com/zjrosen/orglyph/internal/org"
	"github.com/zjrosen/orglyph/internal/query"
)

// Driver integrates the decoration engine with the host's redraw lifecycle.
// It deduplicates full-window passes by document generation, tracked per
// document so switching between documents never skips or repeats work.
// Line passes are never deduplicated; they are already fine-grained.
//
// The driver owns the active configuration: there is one per running session,
// and replacing it is a whole-value swap, never a merge.
type Driver struct {
	engine      *query.Engine
	applier     *Applier
	cfg         config.Config
	generations map[string]uint64
	tracer      trace.Tracer
}

// DriverOption customizes a Driver.
type DriverOption func(*Driver)

// WithTracer records spans around window and line passes.
func WithTracer(t trace.Tracer) DriverOption {
	return func(d *Driver) {
		if t != nil {
			d.tracer = t
		}
	}
}

// NewDriver creates a driver for the given engine and applier.
func NewDriver(engine *query.Engine, applier *Applier, cfg config.Config, opts ...DriverOption) *Driver {
	d := &Driver{
		engine:      engine,
		applier:     applier,
		cfg:         cfg,
		generations: make(map[string]uint64),
		tracer:      noop.NewTracerProvider().Tracer("decor"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Config returns the active configuration.
func (d *Driver) Config() config.Config { return d.cfg }

// SetConfig replaces the active configuration (last write wins).
func (d *Driver) SetConfig(cfg config.Config) { d.cfg = cfg }

// WindowStart reports whether a full-window pass is needed for the document
// at the given generation. It records the generation, so a second call with
// the same value answers false until the document changes.
func (d *Driver) WindowStart(docID string, generation uint64) bool {
	if last, ok := d.generations[docID]; ok && last == generation {
		return false
	}
	d.generations[docID] = generation
	return true
}

// WindowRedraw decorates the visible rows [topRow, bottomRow). Documents not
// declaring the outline content type are left alone.
func (d *Driver) WindowRedraw(ctx context.Context, doc *org.Document, topRow, bottomRow int) {
	if doc == nil || doc.ContentType() != org.ContentType {
		return
	}

	ctx, span := d.tracer.Start(ctx, "decor.window_pass", trace.WithAttributes(
		attribute.String("doc.id", doc.ID()),
		attribute.Int("rows.top", topRow),
		attribute.Int("rows.bottom", bottomRow),
	))
	defer span.End()
	_ = ctx

	occurrences := d.engine.Range(doc, topRow, bottomRow)
	span.SetAttributes(attribute.Int("occurrences", len(occurrences)))
	log.Debug(log.CatDecor, "Window pass",
		"doc", doc.ID(), "top", topRow, "bottom", bottomRow, "occurrences", len(occurrences))

	d.applier.Apply(doc, occurrences, d.cfg)
}

// LineRedraw decorates a single row after a fine-grained change. There is no
// generation dedup here; the caller already knows the row needs work.
func (d *Driver) LineRedraw(ctx context.Context, doc *org.Document, row int) {
	if doc == nil || doc.ContentType() != org.ContentType {
		return
	}

	ctx, span := d.tracer.Start(ctx, "decor.line_pass", trace.WithAttributes(
		attribute.String("doc.id", doc.ID()),
		attribute.Int("row", row),
	))
	defer span.End()
	_ = ctx

	occurrences := d.engine.Range(doc, row, row+1)
	d.applier.Apply(doc, occurrences, d.cfg)
}

// Forget drops generation tracking for a closed document.
func (d *Driver) Forget(docID string) {
	delete(d.generations, docID)
}
