package poller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amishk599/jobping/internal/model"
)

// Poller owns one pass of the pipeline:
// fetch → extract → filter → dedup → notify → persist.
type Poller struct {
	fetcher   model.PageFetcher
	extractor model.Extractor
	filter    model.PostingFilter
	store     model.SeenStore
	notifier  model.Notifier
	logger    *slog.Logger
}

// NewPoller creates a poller wired with all its dependencies. filter may be nil.
func NewPoller(
	fetcher model.PageFetcher,
	extractor model.Extractor,
	filter model.PostingFilter,
	store model.SeenStore,
	notifier model.Notifier,
	logger *slog.Logger,
) *Poller {
	return &Poller{
		fetcher:   fetcher,
		extractor: extractor,
		filter:    filter,
		store:     store,
		notifier:  notifier,
		logger:    logger,
	}
}

// Run executes one pass and returns how many new postings were notified.
// Zero is a normal outcome. The seen-set is written once, and only when it grew.
func (p *Poller) Run(ctx context.Context) (int, error) {
	postings, err := p.scrape(ctx)
	if err != nil {
		return 0, err
	}
	if len(postings) == 0 {
		p.logger.Info("no postings on search page")
		return 0, nil
	}

	seen, err := p.store.Load()
	if err != nil {
		return 0, fmt.Errorf("loading seen-set: %w", err)
	}

	fresh, _ := partition(postings, seen)
	for _, post := range fresh {
		p.notifier.Notify(ctx, post)
	}

	if len(fresh) > 0 {
		for _, post := range fresh {
			seen.Add(post.ID())
		}
		if err := p.store.Save(seen); err != nil {
			return len(fresh), fmt.Errorf("saving seen-set: %w", err)
		}
	}

	p.logger.Info("polled search page",
		"fetched", len(postings),
		"new", len(fresh),
		"seen", seen.Len(),
	)

	return len(fresh), nil
}

// Preview runs fetch, extract, filter and dedup without notifying or saving.
func (p *Poller) Preview(ctx context.Context) (fresh, old []model.Posting, err error) {
	postings, err := p.scrape(ctx)
	if err != nil {
		return nil, nil, err
	}
	seen, err := p.store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading seen-set: %w", err)
	}
	fresh, old = partition(postings, seen)
	return fresh, old, nil
}

func (p *Poller) scrape(ctx context.Context) ([]model.Posting, error) {
	markup, err := p.fetcher.FetchPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching search page: %w", err)
	}

	postings, err := p.extractor.Extract(markup)
	if err != nil {
		return nil, fmt.Errorf("extracting postings: %w", err)
	}
	if p.filter == nil {
		return postings, nil
	}

	matched := postings[:0:0]
	for _, post := range postings {
		if p.filter.Match(post) {
			matched = append(matched, post)
		}
	}
	if skipped := len(postings) - len(matched); skipped > 0 {
		p.logger.Debug("filtered postings", "kept", len(matched), "skipped", skipped)
	}
	return matched, nil
}

// partition splits postings into those absent from seen and those present,
// keeping document order. A link repeated within the page counts once.
func partition(postings []model.Posting, seen model.SeenSet) (fresh, old []model.Posting) {
	batch := model.NewSeenSet()
	for _, post := range postings {
		id := post.ID()
		switch {
		case seen.Has(id):
			old = append(old, post)
		case batch.Add(id):
			fresh = append(fresh, post)
		}
	}
	return fresh, old
}
