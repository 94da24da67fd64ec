package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/jobping/internal/model"
)

// Strategy extracts postings from one known page layout.
// It returns nil when the layout is not present in the document.
type Strategy interface {
	Name() string
	Extract(doc *goquery.Document) []model.Posting
}

// SelectorStrategy matches a layout by CSS selectors. Every Card match is a
// candidate; each sub-selector takes the first match inside the card.
type SelectorStrategy struct {
	Label    string
	Card     string
	Title    string
	Company  string
	Location string
	Link     string
}

var _ Strategy = SelectorStrategy{}

// LegacyLayout matches the original "result-card" search page.
func LegacyLayout() SelectorStrategy {
	return SelectorStrategy{
		Label:    "legacy",
		Card:     "li.result-card.job-result-card.result-card--with-hover-state",
		Title:    "h3.result-card__title.job-result-card__title",
		Company:  "h4.result-card__subtitle.job-result-card__subtitle",
		Location: "span.job-result-card__location",
		Link:     "a.result-card__full-card-link",
	}
}

// CurrentLayout matches the "base-card" search page.
func CurrentLayout() SelectorStrategy {
	return SelectorStrategy{
		Label:    "current",
		Card:     "div.base-card",
		Title:    "h3.base-search-card__title",
		Company:  "h4.base-search-card__subtitle",
		Location: "span.job-search-card__location",
		Link:     "a.base-card__full-link",
	}
}

func (s SelectorStrategy) Name() string { return s.Label }

// Extract scans every card in document order. A card missing any of the four
// fields is skipped.
func (s SelectorStrategy) Extract(doc *goquery.Document) []model.Posting {
	var postings []model.Posting
	doc.Find(s.Card).Each(func(_ int, card *goquery.Selection) {
		if p, ok := s.fromCard(card); ok {
			postings = append(postings, p)
		}
	})
	return postings
}

func (s SelectorStrategy) fromCard(card *goquery.Selection) (model.Posting, bool) {
	title := card.Find(s.Title).First()
	company := card.Find(s.Company).First()
	location := card.Find(s.Location).First()
	link := card.Find(s.Link).First()
	if title.Length() == 0 || company.Length() == 0 || location.Length() == 0 || link.Length() == 0 {
		return model.Posting{}, false
	}

	// An anchor without href has no identity to dedup on.
	href, ok := link.Attr("href")
	if !ok {
		return model.Posting{}, false
	}

	return model.Posting{
		Title:    strings.TrimSpace(title.Text()),
		Company:  strings.TrimSpace(company.Text()),
		Location: strings.TrimSpace(location.Text()),
		Link:     href,
	}, true
}
