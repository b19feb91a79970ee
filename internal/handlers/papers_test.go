package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/jaisngh/arxiv-rag/internal/store"
	store_mocks "github.com/jaisngh/arxiv-rag/internal/store/mocks"
)

func TestPapersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	papers := store_mocks.NewMockPaperStore(ctrl)

	stored := []store.Paper{
		{ArxivID: "2301.07041", Title: "Newest", Published: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ArxivID: "1706.03762", Title: "Older", Published: time.Date(2017, 6, 12, 0, 0, 0, 0, time.UTC)},
	}
	papers.EXPECT().Count(gomock.Any()).Return(2, nil)
	papers.EXPECT().ListRecent(gomock.Any(), 100, 0).Return(stored, nil)

	handler := NewPapersHandler(papers)
	req := httptest.NewRequest(http.MethodGet, "/api/papers", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	var resp PapersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 || len(resp.Papers) != 2 {
		t.Errorf("response = count=%d papers=%d", resp.Count, len(resp.Papers))
	}
	if resp.Papers[0].ArxivID != "2301.07041" {
		t.Errorf("papers[0] = %+v, want newest first", resp.Papers[0])
	}
}

func TestPapersHandler_Pagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	papers := store_mocks.NewMockPaperStore(ctrl)

	papers.EXPECT().Count(gomock.Any()).Return(50, nil)
	papers.EXPECT().ListRecent(gomock.Any(), 10, 20).Return([]store.Paper{}, nil)

	handler := NewPapersHandler(papers)
	req := httptest.NewRequest(http.MethodGet, "/api/papers?limit=10&offset=20", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, body: %s", w.Code, w.Body.String())
	}
}

func TestPapersHandler_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	papers := store_mocks.NewMockPaperStore(ctrl)

	papers.EXPECT().Count(gomock.Any()).Return(0, errors.New("db down"))

	handler := NewPapersHandler(papers)
	req := httptest.NewRequest(http.MethodGet, "/api/papers", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestHealthHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	papers := store_mocks.NewMockPaperStore(ctrl)
	papers.EXPECT().Count(gomock.Any()).Return(42, nil)

	handler := NewHealthHandler(papers)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" || resp.Checks["paper_store"] != "ok" || resp.PaperCount != 42 {
		t.Errorf("response = %+v", resp)
	}
}

func TestHealthHandler_StoreDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	papers := store_mocks.NewMockPaperStore(ctrl)
	papers.EXPECT().Count(gomock.Any()).Return(0, errors.New("db down"))

	handler := NewHealthHandler(papers)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "unhealthy" || resp.Checks["paper_store"] != "error" {
		t.Errorf("response = %+v", resp)
	}
}
