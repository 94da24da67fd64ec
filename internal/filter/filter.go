package filter

import (
	"strings"

	"github.com/amishk599/jobping/internal/model"
)

var _ model.PostingFilter = (*TitleAndLocationFilter)(nil)

// TitleAndLocationFilter narrows the search page down to postings worth an
// alert. Matching is case-insensitive substring. Empty include lists match
// everything; exclude lists win over includes.
type TitleAndLocationFilter struct {
	titleKeywords        []string
	titleExcludeKeywords []string
	locations            []string
	excludeLocations     []string
}

// NewTitleAndLocationFilter returns a filter over title and location keywords.
func NewTitleAndLocationFilter(titleKeywords, titleExcludeKeywords, locations, excludeLocations []string) *TitleAndLocationFilter {
	return &TitleAndLocationFilter{
		titleKeywords:        lowerAll(titleKeywords),
		titleExcludeKeywords: lowerAll(titleExcludeKeywords),
		locations:            lowerAll(locations),
		excludeLocations:     lowerAll(excludeLocations),
	}
}

// Match returns true if the posting passes every configured list.
func (f *TitleAndLocationFilter) Match(p model.Posting) bool {
	title := strings.ToLower(p.Title)
	location := strings.ToLower(p.Location)

	if containsAny(title, f.titleExcludeKeywords) || containsAny(location, f.excludeLocations) {
		return false
	}
	if len(f.titleKeywords) > 0 && !containsAny(title, f.titleKeywords) {
		return false
	}
	if len(f.locations) > 0 && !containsAny(location, f.locations) {
		return false
	}
	return true
}

// IsEmpty reports whether the filter lets everything through.
func (f *TitleAndLocationFilter) IsEmpty() bool {
	return len(f.titleKeywords)+len(f.titleExcludeKeywords)+len(f.locations)+len(f.excludeLocations) == 0
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}
