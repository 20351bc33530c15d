// Package tui provides an interactive terminal UI for querying the index.
package tui

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
	"github.com/intellirag/intellirag-cli/internal/core/ports/driving"
)

// Model is the Bubble Tea model for the query screen.
type Model struct {
	retrieval driving.RetrievalService
	answer    driving.AnswerService
	topK      int

	input    textinput.Model
	viewport viewport.Model

	results    []domain.RetrievalResult
	answerText string
	summary    string
	status     string
	cursor     int
	ready      bool
	lastQuery  string
}

// New creates the query screen. answer may be nil, in which case only
// retrieved chunks are shown.
func New(retrieval driving.RetrievalService, answer driving.AnswerService, topK int, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		retrieval: retrieval,
		answer:    answer,
		topK:      topK,
		input:     ti,
		viewport:  vp,
		summary:   summary,
		status:    "Ready. Type a question.",
	}
}

// Init starts the text input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + summary, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.status = "Searching..."
				return m, m.queryCmd(q)
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	case queryResultMsg:
		m.lastQuery = msg.query
		m.results = msg.results
		m.cursor = 0
		m.answerText = msg.answer
		switch {
		case msg.err != nil:
			m.status = "Error: " + msg.err.Error()
		case len(msg.results) == 0:
			m.status = "No relevant documents found."
		default:
			m.status = fmt.Sprintf("%d chunks for %q", len(msg.results), msg.query)
			if msg.llmDown {
				m.status += " (LLM unavailable, showing context)"
			}
		}
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// queryResultMsg carries the outcome of one query back into Update.
type queryResultMsg struct {
	query   string
	results []domain.RetrievalResult
	answer  string
	llmDown bool
	err     error
}

// queryCmd retrieves chunks for q and, when an LLM is configured, an answer.
// The work runs off the event loop so the UI stays responsive.
func (m Model) queryCmd(q string) tea.Cmd {
	retrieval, answerSvc, topK := m.retrieval, m.answer, m.topK
	return func() tea.Msg {
		ctx := context.Background()

		results, err := retrieval.Retrieve(ctx, q, topK)
		if err != nil {
			return queryResultMsg{query: q, err: err}
		}

		msg := queryResultMsg{query: q, results: results}
		if len(results) > 0 && answerSvc != nil {
			answer, err := answerSvc.Answer(ctx, q, results)
			switch {
			case err == nil:
				msg.answer = answer
			case errors.Is(err, domain.ErrLLMUnavailable):
				msg.llmDown = true
			default:
				msg.err = err
			}
		}
		return msg
	}
}

// View renders the screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("IntelliRAG")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}

	var b strings.Builder
	if m.answerText != "" {
		b.WriteString(answerStyle.Render("Answer"))
		b.WriteString("\n")
		b.WriteString(m.answerText)
		b.WriteString("\n\n")
	}

	r := m.results[m.cursor]
	title := fmt.Sprintf("Chunk %d/%d  %s  score=%.3f",
		m.cursor+1, len(m.results), r.Metadata.SourceFile, r.Score)
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(highlightBestSentence(r.Content, m.lastQuery))
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	answerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	wordRe         = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
	sentenceRe     = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

// highlightBestSentence emphasises the sentence sharing the most words with
// the query, so the eye lands on why the chunk matched.
func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx := 0
	bestScore := -1
	for i, s := range sentences {
		score := tokenOverlapScore(qTokens, s)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	for i := range sentences {
		sent := strings.TrimSpace(sentences[i])
		if i == bestIdx {
			sentences[i] = highlightStyle.Render(sent)
		} else {
			sentences[i] = sent
		}
	}
	return strings.Join(sentences, " ")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := wordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	tokens := wordRe.FindAllString(strings.ToLower(sentence), -1)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
