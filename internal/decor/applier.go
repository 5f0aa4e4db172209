package decor

import (
	"github.com/zjrosen/orglyph/internal/config"
	"github.com/zjrosen/orglyph/internal/log"
	"github.com/zjrosen/orglyph/internal/org"
	"github.com/zjrosen/orglyph/internal/query"
	"github.com/zjrosen/orglyph/internal/rules"
)

// Applier turns occurrences into overlay requests. It holds no per-document
// state: output is fully determined by the occurrences, the configuration and
// the host's cursor position at call time.
type Applier struct {
	host     Host
	notifier *Notifier
}

// NewApplier creates an applier issuing overlays against host. Failures are
// reported through notifier.
func NewApplier(host Host, notifier *Notifier) *Applier {
	return &Applier{host: host, notifier: notifier}
}

// Apply decorates each occurrence. A single bad occurrence never aborts the
// batch: invalid spans are skipped silently, host rejections are reported
// once through the notifier and processing continues.
func (a *Applier) Apply(doc *org.Document, occurrences []query.Occurrence, cfg config.Config) {
	for _, occ := range occurrences {
		// The cursor can move between calls, so the exemption is
		// re-evaluated for every occurrence rather than cached.
		if !cfg.ShowCurrentLine {
			if row, _ := a.host.CursorPosition(doc.ID()); row == occ.Span.StartRow {
				continue
			}
		}

		if occ.Span.StartCol < 0 || occ.Span.EndCol < 0 {
			continue
		}

		segments := rules.Resolve(occ.Kind, occ.RawText, cfg)
		if len(segments) == 0 {
			continue
		}

		if err := a.host.CreateOverlay(doc.ID(), occ.Span, segments, BlendCombine); err != nil {
			log.ErrorErr(log.CatDecor, "Overlay rejected by host", err,
				"doc", doc.ID(), "row", occ.Span.StartRow, "kind", occ.Kind)
			a.notifier.Error(err.Error())
		}
	}
}
