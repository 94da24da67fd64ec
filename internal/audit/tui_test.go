package audit

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/jobping/internal/model"
)

func reviewFixture(opened *[]string) reviewModel {
	fresh := []model.Posting{
		{Title: "Backend Engineer", Company: "Acme", Location: "Remote", Link: "L1"},
		{Title: "SRE", Company: "Globex", Location: "Austin, TX", Link: "L2"},
	}
	seen := []model.Posting{
		{Title: "Data Engineer", Company: "Hooli", Location: "Seattle, WA", Link: "L0"},
	}
	m := newReviewModel(fresh, seen, func(u string) { *opened = append(*opened, u) })
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(reviewModel)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestReview_ListShowsCounts(t *testing.T) {
	var opened []string
	m := reviewFixture(&opened)

	view := m.View()
	if !strings.Contains(view, "New (2)") || !strings.Contains(view, "Already Seen (1)") {
		t.Errorf("list view missing pane headers:\n%s", view)
	}
}

func TestReview_CursorAndOpen(t *testing.T) {
	var opened []string
	m := reviewFixture(&opened)

	next, _ := m.Update(key("down"))
	next, _ = next.Update(key("o"))
	if len(opened) != 1 || opened[0] != "L2" {
		t.Errorf("opened = %v, want [L2]", opened)
	}

	next, _ = next.Update(key("tab"))
	next, _ = next.Update(key("o"))
	if len(opened) != 2 || opened[1] != "L0" {
		t.Errorf("opened = %v, want L0 from the seen pane", opened)
	}
}

func TestReview_DetailView(t *testing.T) {
	var opened []string
	m := reviewFixture(&opened)

	next, _ := m.Update(key("enter"))
	rm := next.(reviewModel)
	if rm.view != viewDetail || rm.detail.Link != "L1" || !rm.detailIsNew {
		t.Fatalf("expected detail of L1 marked new, got view=%v detail=%+v", rm.view, rm.detail)
	}
	if !strings.Contains(rm.renderDetail(), "Backend Engineer") {
		t.Error("detail should render the title")
	}

	next, _ = next.Update(key("esc"))
	if next.(reviewModel).view != viewList {
		t.Error("esc should return to the list")
	}
}

func TestReview_CursorClamps(t *testing.T) {
	var opened []string
	m := reviewFixture(&opened)

	var next tea.Model = m
	for i := 0; i < 5; i++ {
		next, _ = next.Update(key("down"))
	}
	if c := next.(reviewModel).leftCursor; c != 1 {
		t.Errorf("leftCursor = %d, want 1 (last index)", c)
	}
}
