package audit

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobping/internal/model"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// PreviewFunc fetches the search page and splits it into new and seen postings.
type PreviewFunc func(ctx context.Context) (fresh, seen []model.Posting, err error)

type previewDoneMsg struct {
	fresh []model.Posting
	seen  []model.Posting
	err   error
}

type spinnerTickMsg struct{}

type loaderModel struct {
	query   string
	preview PreviewFunc
	timeout time.Duration
	frame   int
	fresh   []model.Posting
	seen    []model.Posting
	err     error
	done    bool
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doPreview(), m.tick())
}

func (m loaderModel) doPreview() tea.Cmd {
	preview, timeout := m.preview, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		fresh, seen, err := preview(ctx)
		return previewDoneMsg{fresh: fresh, seen: seen, err: err}
	}
}

func (m loaderModel) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case previewDoneMsg:
		m.fresh = msg.fresh
		m.seen = msg.seen
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinnerTickMsg:
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, m.tick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = fmt.Errorf("cancelled")
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	spinner := lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Render(spinnerFrames[m.frame])
	return fmt.Sprintf("%s Fetching postings for %q...\n", spinner, m.query)
}

// RunLoader shows a spinner while preview runs. It renders inline (no alt screen).
func RunLoader(query string, timeout time.Duration, preview PreviewFunc) (fresh, seen []model.Posting, err error) {
	m := loaderModel{
		query:   query,
		preview: preview,
		timeout: timeout,
	}
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return nil, nil, err
	}
	final := result.(loaderModel)
	return final.fresh, final.seen, final.err
}
