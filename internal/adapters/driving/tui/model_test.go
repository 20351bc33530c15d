package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
)

type stubRetrieval struct {
	results []domain.RetrievalResult
	err     error
	queries []string
}

func (s *stubRetrieval) Retrieve(_ context.Context, query string, _ int) ([]domain.RetrievalResult, error) {
	s.queries = append(s.queries, query)
	return s.results, s.err
}

func (s *stubRetrieval) Count(_ context.Context) (int, error) { return len(s.results), nil }

type stubAnswer struct {
	answer string
	err    error
}

func (s *stubAnswer) Answer(_ context.Context, _ string, _ []domain.RetrievalResult) (string, error) {
	return s.answer, s.err
}

func twoResults() []domain.RetrievalResult {
	return []domain.RetrievalResult{
		{Content: "First chunk about cats.", Metadata: domain.ChunkMetadata{SourceFile: "a.txt"}, Score: 0.9, Rank: 1},
		{Content: "Second chunk about dogs.", Metadata: domain.ChunkMetadata{SourceFile: "b.txt"}, Score: 0.8, Rank: 2},
	}
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func typeRunes(m Model, text string) Model {
	for _, r := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

// typeAndEnter submits text and runs the resulting query command to
// completion, feeding its message back into the model.
func typeAndEnter(m Model, text string) Model {
	m = typeRunes(m, text)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		return m
	}
	if msg, ok := cmd().(queryResultMsg); ok {
		updated, _ = m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestModel_InitialView(t *testing.T) {
	m := New(&stubRetrieval{}, nil, 5, "3 chunks indexed")
	assert.Equal(t, "Loading...", m.View())

	m = sized(m)
	view := m.View()
	assert.Contains(t, view, "IntelliRAG")
	assert.Contains(t, view, "3 chunks indexed")
	assert.Contains(t, view, "Ready. Type a question.")
}

func TestModel_QueryShowsAnswer(t *testing.T) {
	retrieval := &stubRetrieval{results: twoResults()}
	m := sized(New(retrieval, &stubAnswer{answer: "Cats and dogs."}, 5, ""))

	m = typeAndEnter(m, "pets?")

	require.Equal(t, []string{"pets?"}, retrieval.queries)
	view := m.View()
	assert.Contains(t, view, "Cats and dogs.")
	assert.Contains(t, view, "a.txt")
}

func TestModel_QueryRunsOffEventLoop(t *testing.T) {
	retrieval := &stubRetrieval{results: twoResults()}
	m := sized(New(retrieval, nil, 5, ""))
	m = typeRunes(m, "pets?")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	// Enter must not touch the services itself; the returned command does.
	require.NotNil(t, cmd)
	assert.Empty(t, retrieval.queries)
	assert.Contains(t, m.View(), "Searching...")

	msg, ok := cmd().(queryResultMsg)
	require.True(t, ok)
	assert.Equal(t, []string{"pets?"}, retrieval.queries)

	updated, _ = m.Update(msg)
	m = updated.(Model)
	assert.Contains(t, m.View(), "a.txt")
}

func TestModel_QueryNoResults(t *testing.T) {
	m := sized(New(&stubRetrieval{}, nil, 5, ""))

	m = typeAndEnter(m, "anything?")

	assert.Contains(t, m.View(), "No relevant documents found.")
}

func TestModel_QueryError(t *testing.T) {
	m := sized(New(&stubRetrieval{err: errors.New("index corrupt")}, nil, 5, ""))

	m = typeAndEnter(m, "question")

	assert.Contains(t, m.View(), "Error: ")
}

func TestModel_LLMUnavailableFallsBack(t *testing.T) {
	m := sized(New(&stubRetrieval{results: twoResults()}, &stubAnswer{err: domain.ErrLLMUnavailable}, 5, ""))

	m = typeAndEnter(m, "pets?")

	view := m.View()
	assert.Contains(t, view, "LLM unavailable")
	assert.Contains(t, view, "a.txt")
}

func TestModel_CursorWraps(t *testing.T) {
	m := sized(New(&stubRetrieval{results: twoResults()}, nil, 5, ""))
	m = typeAndEnter(m, "pets?")

	assert.Contains(t, m.View(), "Chunk 1/2")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Contains(t, m.View(), "Chunk 2/2")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Contains(t, m.View(), "Chunk 1/2", "cursor wraps around")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	assert.Contains(t, m.View(), "Chunk 2/2")
}

func TestModel_QuitKeys(t *testing.T) {
	m := sized(New(&stubRetrieval{}, nil, 5, ""))

	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc} {
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd, "key %v quits", key)
	}
}

func TestHighlightBestSentence(t *testing.T) {
	text := "Cats purr. Dogs bark. Fish swim."
	out := highlightBestSentence(text, "why do dogs bark?")

	assert.Contains(t, out, "Cats purr.")
	assert.Contains(t, out, "Fish swim.")
	// The matching sentence is wrapped in styling; its words survive.
	assert.Contains(t, out, "Dogs bark.")
}

func TestHighlightBestSentence_NoSentences(t *testing.T) {
	out := highlightBestSentence("no terminal punctuation here", "query")
	assert.Contains(t, out, "no terminal punctuation here")
}

func TestTokenOverlapScore(t *testing.T) {
	q := toTokenSet("how do cats purr")
	assert.Equal(t, 2, tokenOverlapScore(q, "Cats purr loudly"))
	assert.Equal(t, 0, tokenOverlapScore(q, "completely unrelated"))
	assert.Equal(t, 1, tokenOverlapScore(q, "cats cats cats"), "repeated words count once")
}

func TestModel_BlankQueryIgnored(t *testing.T) {
	retrieval := &stubRetrieval{}
	m := sized(New(retrieval, nil, 5, ""))

	m = typeAndEnter(m, "   ")

	assert.Empty(t, retrieval.queries)
}
