package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	rag_mocks "github.com/jaisngh/arxiv-rag/internal/rag/mocks"
	"github.com/jaisngh/arxiv-rag/internal/store"
	store_mocks "github.com/jaisngh/arxiv-rag/internal/store/mocks"
)

func testMatches() []store.Match {
	return []store.Match{
		{
			Paper: store.Paper{
				ArxivID:  "2301.07041",
				Title:    "First Paper",
				Abstract: "First abstract.",
				Authors:  []string{"Alice"},
			},
			Similarity: 0.91,
		},
		{
			Paper: store.Paper{
				ArxivID:  "1706.03762",
				Title:    "Second Paper",
				Abstract: "Second abstract.",
				Authors:  []string{"Bob"},
			},
			Similarity: 0.83,
		},
	}
}

func TestRetrieve(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := rag_mocks.NewMockEmbedder(ctrl)
	generator := rag_mocks.NewMockGenerator(ctrl)
	papers := store_mocks.NewMockPaperStore(ctrl)

	queryVec := []float32{0.1, 0.2, 0.3}
	matches := testMatches()

	embedder.EXPECT().Embed(gomock.Any(), "what is attention?").Return(queryVec, nil)
	papers.EXPECT().SearchSimilar(gomock.Any(), queryVec, 2).Return(matches, nil)

	eng := NewEngine(embedder, papers, generator, 5)
	got, err := eng.Retrieve(context.Background(), "what is attention?", 2)
	if err != nil {
		t.Fatalf("Retrieve() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Retrieve() returned %d matches, want 2", len(got))
	}
	// Store ordering passes through untouched.
	if got[0].ArxivID != "2301.07041" || got[1].ArxivID != "1706.03762" {
		t.Errorf("Retrieve() reordered matches: %v, %v", got[0].ArxivID, got[1].ArxivID)
	}
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := rag_mocks.NewMockEmbedder(ctrl)
	generator := rag_mocks.NewMockGenerator(ctrl)
	papers := store_mocks.NewMockPaperStore(ctrl)

	eng := NewEngine(embedder, papers, generator, 5)
	_, err := eng.Retrieve(context.Background(), "   ", 5)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Retrieve(blank) error = %v, want ErrInvalidInput", err)
	}
}

func TestRetrieve_DefaultTopK(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := rag_mocks.NewMockEmbedder(ctrl)
	generator := rag_mocks.NewMockGenerator(ctrl)
	papers := store_mocks.NewMockPaperStore(ctrl)

	embedder.EXPECT().Embed(gomock.Any(), "q").Return([]float32{1}, nil)
	papers.EXPECT().SearchSimilar(gomock.Any(), gomock.Any(), 7).Return(nil, nil)

	eng := NewEngine(embedder, papers, generator, 7)
	if _, err := eng.Retrieve(context.Background(), "q", 0); err != nil {
		t.Fatalf("Retrieve() unexpected error: %v", err)
	}
}

func TestRetrieve_EmptyStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := rag_mocks.NewMockEmbedder(ctrl)
	generator := rag_mocks.NewMockGenerator(ctrl)
	papers := store_mocks.NewMockPaperStore(ctrl)

	embedder.EXPECT().Embed(gomock.Any(), "q").Return([]float32{1}, nil)
	papers.EXPECT().SearchSimilar(gomock.Any(), gomock.Any(), 5).Return([]store.Match{}, nil)

	eng := NewEngine(embedder, papers, generator, 5)
	got, err := eng.Retrieve(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("Retrieve() against an empty store should not error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Retrieve() = %d matches, want 0", len(got))
	}
}

func TestRetrieve_ServiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(e *rag_mocks.MockEmbedder, p *store_mocks.MockPaperStore)
		sentinel error
	}{
		{
			name: "embedding failure",
			setup: func(e *rag_mocks.MockEmbedder, p *store_mocks.MockPaperStore) {
				e.EXPECT().Embed(gomock.Any(), "q").Return(nil, errors.New("connection refused"))
			},
			sentinel: ErrEmbeddingService,
		},
		{
			name: "store failure",
			setup: func(e *rag_mocks.MockEmbedder, p *store_mocks.MockPaperStore) {
				e.EXPECT().Embed(gomock.Any(), "q").Return([]float32{1}, nil)
				p.EXPECT().SearchSimilar(gomock.Any(), gomock.Any(), 5).Return(nil, errors.New("db down"))
			},
			sentinel: ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			embedder := rag_mocks.NewMockEmbedder(ctrl)
			generator := rag_mocks.NewMockGenerator(ctrl)
			papers := store_mocks.NewMockPaperStore(ctrl)
			tt.setup(embedder, papers)

			eng := NewEngine(embedder, papers, generator, 5)
			_, err := eng.Retrieve(context.Background(), "q", 5)
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Retrieve() error = %v, want %v", err, tt.sentinel)
			}
		})
	}
}

func TestAnswer(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := rag_mocks.NewMockEmbedder(ctrl)
	generator := rag_mocks.NewMockGenerator(ctrl)
	papers := store_mocks.NewMockPaperStore(ctrl)

	matches := testMatches()
	embedder.EXPECT().Embed(gomock.Any(), "what is attention?").Return([]float32{1}, nil)
	papers.EXPECT().SearchSimilar(gomock.Any(), gomock.Any(), 2).Return(matches, nil)
	generator.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, prompt string) (string, error) {
			if !strings.Contains(prompt, "what is attention?") {
				t.Error("prompt does not contain the user question")
			}
			if !strings.Contains(prompt, "First abstract.") {
				t.Error("prompt does not contain the retrieved abstracts")
			}
			return "Attention is all you need [1706.03762].", nil
		})

	eng := NewEngine(embedder, papers, generator, 5)
	ans, err := eng.Answer(context.Background(), "what is attention?", 2)
	if err != nil {
		t.Fatalf("Answer() unexpected error: %v", err)
	}
	if ans.Text != "Attention is all you need [1706.03762]." {
		t.Errorf("Answer() text = %q", ans.Text)
	}
	if len(ans.Sources) != 2 {
		t.Fatalf("Answer() returned %d sources, want 2", len(ans.Sources))
	}
	// Sources preserve retrieval order and carry similarities through.
	if ans.Sources[0].ArxivID != "2301.07041" || ans.Sources[0].Similarity != 0.91 {
		t.Errorf("Sources[0] = %+v", ans.Sources[0])
	}
	if ans.Sources[1].ArxivID != "1706.03762" || ans.Sources[1].Similarity != 0.83 {
		t.Errorf("Sources[1] = %+v", ans.Sources[1])
	}
}

func TestAnswer_NoResultsFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := rag_mocks.NewMockEmbedder(ctrl)
	generator := rag_mocks.NewMockGenerator(ctrl)
	papers := store_mocks.NewMockPaperStore(ctrl)

	embedder.EXPECT().Embed(gomock.Any(), "q").Return([]float32{1}, nil)
	papers.EXPECT().SearchSimilar(gomock.Any(), gomock.Any(), 5).Return(nil, nil)
	// Empty retrieval never reaches the generation service.
	generator.EXPECT().Generate(gomock.Any(), gomock.Any()).Times(0)

	eng := NewEngine(embedder, papers, generator, 5)
	ans, err := eng.Answer(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("Answer() unexpected error: %v", err)
	}
	if ans.Text != noResultsAnswer {
		t.Errorf("Answer() text = %q, want the fixed fallback", ans.Text)
	}
	if ans.Sources == nil || len(ans.Sources) != 0 {
		t.Errorf("Answer() sources = %v, want empty non-nil slice", ans.Sources)
	}
}

func TestAnswer_GenerationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := rag_mocks.NewMockEmbedder(ctrl)
	generator := rag_mocks.NewMockGenerator(ctrl)
	papers := store_mocks.NewMockPaperStore(ctrl)

	embedder.EXPECT().Embed(gomock.Any(), "q").Return([]float32{1}, nil)
	papers.EXPECT().SearchSimilar(gomock.Any(), gomock.Any(), 5).Return(testMatches(), nil)
	generator.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", errors.New("model crashed"))

	eng := NewEngine(embedder, papers, generator, 5)
	_, err := eng.Answer(context.Background(), "q", 5)
	if !errors.Is(err, ErrGenerationService) {
		t.Errorf("Answer() error = %v, want ErrGenerationService", err)
	}
}

func TestAnswerStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := rag_mocks.NewMockEmbedder(ctrl)
	generator := rag_mocks.NewMockGenerator(ctrl)
	papers := store_mocks.NewMockPaperStore(ctrl)

	matches := testMatches()
	embedder.EXPECT().Embed(gomock.Any(), "q").Return([]float32{1}, nil)
	papers.EXPECT().SearchSimilar(gomock.Any(), gomock.Any(), 2).Return(matches, nil)
	generator.EXPECT().GenerateStream(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, cb func(token string, done bool) error) error {
			for _, tok := range []string{"Atten", "tion."} {
				if err := cb(tok, false); err != nil {
					return err
				}
			}
			return cb("", true)
		})

	var events []StreamEvent
	eng := NewEngine(embedder, papers, generator, 5)
	err := eng.AnswerStream(context.Background(), "q", 2, func(ev StreamEvent) error {
		events = append(events, ev)
		return nil
	})
	if err != nil {
		t.Fatalf("AnswerStream() unexpected error: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("AnswerStream() emitted %d events, want 3", len(events))
	}
	for _, ev := range events[:2] {
		if ev.Done || ev.Sources != nil {
			t.Errorf("intermediate event carries done/sources: %+v", ev)
		}
	}
	final := events[2]
	if !final.Done {
		t.Error("final event is not marked done")
	}
	// The final event carries the same sources a batched Answer would.
	if len(final.Sources) != 2 || final.Sources[0].ArxivID != "2301.07041" {
		t.Errorf("final event sources = %+v", final.Sources)
	}

	var text strings.Builder
	for _, ev := range events {
		text.WriteString(ev.Token)
	}
	if text.String() != "Attention." {
		t.Errorf("concatenated tokens = %q, want %q", text.String(), "Attention.")
	}
}

func TestAnswerStream_NoResultsFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := rag_mocks.NewMockEmbedder(ctrl)
	generator := rag_mocks.NewMockGenerator(ctrl)
	papers := store_mocks.NewMockPaperStore(ctrl)

	embedder.EXPECT().Embed(gomock.Any(), "q").Return([]float32{1}, nil)
	papers.EXPECT().SearchSimilar(gomock.Any(), gomock.Any(), 5).Return(nil, nil)
	generator.EXPECT().GenerateStream(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	var events []StreamEvent
	eng := NewEngine(embedder, papers, generator, 5)
	err := eng.AnswerStream(context.Background(), "q", 5, func(ev StreamEvent) error {
		events = append(events, ev)
		return nil
	})
	if err != nil {
		t.Fatalf("AnswerStream() unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("AnswerStream() emitted %d events, want a single fallback event", len(events))
	}
	if events[0].Token != noResultsAnswer || !events[0].Done {
		t.Errorf("fallback event = %+v", events[0])
	}
}

func TestAnswerStream_CallbackErrorStopsStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := rag_mocks.NewMockEmbedder(ctrl)
	generator := rag_mocks.NewMockGenerator(ctrl)
	papers := store_mocks.NewMockPaperStore(ctrl)

	embedder.EXPECT().Embed(gomock.Any(), "q").Return([]float32{1}, nil)
	papers.EXPECT().SearchSimilar(gomock.Any(), gomock.Any(), 5).Return(testMatches(), nil)
	generator.EXPECT().GenerateStream(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, cb func(token string, done bool) error) error {
			return cb("tok", false)
		})

	eng := NewEngine(embedder, papers, generator, 5)
	err := eng.AnswerStream(context.Background(), "q", 5, func(StreamEvent) error {
		return errors.New("client went away")
	})
	if !errors.Is(err, ErrGenerationService) {
		t.Errorf("AnswerStream() error = %v, want ErrGenerationService", err)
	}
}

func TestEnsureModelsReady(t *testing.T) {
	tests := []struct {
		name       string
		embedReady bool
		genReady   bool
		want       bool
	}{
		{"both ready", true, true, true},
		{"embedder missing", false, true, false},
		{"generator missing", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			embedder := rag_mocks.NewMockEmbedder(ctrl)
			generator := rag_mocks.NewMockGenerator(ctrl)
			papers := store_mocks.NewMockPaperStore(ctrl)

			embedder.EXPECT().EnsureModel(gomock.Any()).Return(tt.embedReady)
			generator.EXPECT().EnsureModel(gomock.Any()).Return(tt.genReady)

			eng := NewEngine(embedder, papers, generator, 5)
			if got := eng.EnsureModelsReady(context.Background()); got != tt.want {
				t.Errorf("EnsureModelsReady() = %v, want %v", got, tt.want)
			}
		})
	}
}
