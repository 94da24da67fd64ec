package extract

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/jobping/internal/model"
)

var _ model.Extractor = (*Extractor)(nil)

// Extractor tries its strategies in priority order and returns the first
// non-empty result. Supporting a new page layout means appending a Strategy.
type Extractor struct {
	strategies []Strategy
	logger     *slog.Logger
}

// New returns an extractor that tries strategies in the given order.
// With no strategies it uses the legacy layout, then the current one.
func New(logger *slog.Logger, strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = []Strategy{LegacyLayout(), CurrentLayout()}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{strategies: strategies, logger: logger}
}

// Extract parses markup once and runs each strategy until one yields postings.
// No matching layout is not an error: the result is simply empty.
func (e *Extractor) Extract(markup string) ([]model.Posting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}

	for _, s := range e.strategies {
		postings := s.Extract(doc)
		if len(postings) > 0 {
			e.logger.Debug("layout matched", "strategy", s.Name(), "postings", len(postings))
			return postings, nil
		}
		e.logger.Debug("layout yielded nothing", "strategy", s.Name())
	}
	return []model.Posting{}, nil
}
