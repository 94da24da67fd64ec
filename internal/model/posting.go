package model

import "context"

// Posting is one job listing scraped from a search result page.
type Posting struct {
	Title    string // job title
	Company  string // hiring company
	Location string // location as rendered on the card
	Link     string // href of the card's anchor, verbatim
}

// ID returns the identity used for deduplication. Two postings with the same
// link are the same posting even if the other fields were rendered differently.
func (p Posting) ID() string {
	return p.Link
}

// PageFetcher fetches the raw markup of one search result page.
type PageFetcher interface {
	FetchPage(ctx context.Context) (string, error)
}

// Extractor turns raw markup into postings, in document order.
type Extractor interface {
	Extract(markup string) ([]Posting, error)
}

// SeenStore persists the set of posting IDs that already triggered an alert.
type SeenStore interface {
	Load() (SeenSet, error)
	Save(set SeenSet) error
}

// Notifier raises an alert for a newly discovered posting. Delivery failures
// are handled inside the implementation and never reach the caller.
type Notifier interface {
	Notify(ctx context.Context, p Posting)
}

// PostingFilter decides whether a posting matches the user's criteria.
type PostingFilter interface {
	Match(p Posting) bool
}
