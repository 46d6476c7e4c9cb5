package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/mock/gomock"

	"docsorter/internal/analysis"
	"docsorter/internal/service"
	"docsorter/internal/service/mocks"
	"docsorter/internal/storage"
)

func encodeBody(t *testing.T, body any) *bytes.Buffer {
	t.Helper()
	if s, ok := body.(string); ok {
		return bytes.NewBufferString(s)
	}
	if body == nil {
		return &bytes.Buffer{}
	}
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode body: %v", err)
	}
	return bytes.NewBuffer(data)
}

func TestAnalysisHandler_Analyze(t *testing.T) {
	const doc = "/inbox/rechnung.txt"
	rec := &storage.AnalysisRecord{
		Path:          doc,
		ExtractedText: "Rechnung Nr. 4711",
		Keywords:      []string{"rechnung"},
		Dates:         []time.Time{time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)},
		AnalyzedAt:    time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name          string
		body          any
		mockSetup     func(*mocks.MockSorter)
		wantStatus    int
		checkResponse func(*testing.T, AnalysisResponse)
	}{
		{
			name: "analysis available",
			body: AnalyzeRequest{Path: doc, Wait: true},
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().Analyze(gomock.Any(), service.AnalyzeRequest{Path: doc, Wait: true}).
					Return(service.AnalyzeResponse{Record: rec}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp AnalysisResponse) {
				if resp.Pending || resp.Excerpt != "Rechnung Nr. 4711" {
					t.Errorf("response = %+v", resp)
				}
				if len(resp.Dates) != 1 || resp.Dates[0] != "2026-03-14" {
					t.Errorf("dates = %v, want [2026-03-14]", resp.Dates)
				}
				if resp.AnalyzedAt != "2026-03-15T08:00:00Z" {
					t.Errorf("analyzed_at = %q", resp.AnalyzedAt)
				}
			},
		},
		{
			name: "queued",
			body: AnalyzeRequest{Path: doc, Urgent: true},
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().Analyze(gomock.Any(), service.AnalyzeRequest{Path: doc, Urgent: true}).
					Return(service.AnalyzeResponse{Pending: true}, nil)
			},
			wantStatus: http.StatusAccepted,
			checkResponse: func(t *testing.T, resp AnalysisResponse) {
				if !resp.Pending || resp.Analyzing || resp.Path != doc {
					t.Errorf("response = %+v, want pending for %s", resp, doc)
				}
			},
		},
		{
			name: "being analyzed",
			body: AnalyzeRequest{Path: doc},
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().Analyze(gomock.Any(), service.AnalyzeRequest{Path: doc}).
					Return(service.AnalyzeResponse{Pending: true, Analyzing: true}, nil)
			},
			wantStatus: http.StatusAccepted,
			checkResponse: func(t *testing.T, resp AnalysisResponse) {
				if !resp.Pending || !resp.Analyzing {
					t.Errorf("response = %+v, want pending and analyzing", resp)
				}
			},
		},
		{
			name:       "invalid JSON body",
			body:       "not json",
			mockSetup:  func(m *mocks.MockSorter) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "validation error",
			body: AnalyzeRequest{Path: "relative.txt"},
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().Analyze(gomock.Any(), gomock.Any()).
					Return(service.AnalyzeResponse{}, &service.ValidationError{Field: "path", Message: "must be an absolute path"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unsupported type",
			body: AnalyzeRequest{Path: "/inbox/scan.tiff"},
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().Analyze(gomock.Any(), gomock.Any()).
					Return(service.AnalyzeResponse{}, fmt.Errorf("%w: unsupported document type", service.ErrInvalidInput))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "service error",
			body: AnalyzeRequest{Path: doc, Wait: true},
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().Analyze(gomock.Any(), gomock.Any()).
					Return(service.AnalyzeResponse{}, analysis.ErrClosed)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sorter := mocks.NewMockSorter(ctrl)
			tt.mockSetup(sorter)

			req := httptest.NewRequest(http.MethodPost, "/api/analysis", encodeBody(t, tt.body))
			w := httptest.NewRecorder()
			NewAnalysisHandler(sorter).Analyze(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Analyze() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.checkResponse != nil {
				var resp AnalysisResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAnalysisHandler_PreCache(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		mockSetup  func(*mocks.MockSorter)
		wantStatus int
		wantQueued int
	}{
		{
			name: "explicit paths",
			body: PreCacheRequest{Paths: []string{"/inbox/a.txt", "/inbox/b.md"}},
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().PreCache(gomock.Any(), []string{"/inbox/a.txt", "/inbox/b.md"}).Return(2, nil)
			},
			wantStatus: http.StatusAccepted,
			wantQueued: 2,
		},
		{
			name: "inbox",
			body: PreCacheRequest{},
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().PreCacheInbox(gomock.Any()).Return(4, nil)
			},
			wantStatus: http.StatusAccepted,
			wantQueued: 4,
		},
		{
			name: "inbox not configured",
			body: PreCacheRequest{},
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().PreCacheInbox(gomock.Any()).Return(0, service.WrapError(service.ErrUnavailable, "inbox not configured"))
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sorter := mocks.NewMockSorter(ctrl)
			tt.mockSetup(sorter)

			req := httptest.NewRequest(http.MethodPost, "/api/analysis/precache", encodeBody(t, tt.body))
			w := httptest.NewRecorder()
			NewAnalysisHandler(sorter).PreCache(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("PreCache() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusAccepted {
				var resp PreCacheResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Queued != tt.wantQueued {
					t.Errorf("queued = %d, want %d", resp.Queued, tt.wantQueued)
				}
			}
		})
	}
}

func TestAnalysisHandler_MoveClearStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	sorter := mocks.NewMockSorter(ctrl)
	h := NewAnalysisHandler(sorter)

	t.Run("move", func(t *testing.T) {
		sorter.EXPECT().RecordMove(gomock.Any(), service.MoveRequest{From: "/inbox/a.txt", To: "/archiv/a.txt"}).Return(true, nil)

		w := httptest.NewRecorder()
		h.Move(w, httptest.NewRequest(http.MethodPost, "/api/analysis/move",
			encodeBody(t, MoveRequest{From: "/inbox/a.txt", To: "/archiv/a.txt"})))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"migrated":true`) {
			t.Errorf("Move() = %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("clear persistent", func(t *testing.T) {
		sorter.EXPECT().ClearCache(gomock.Any(), service.ClearRequest{Persistent: true}).Return(nil)

		w := httptest.NewRecorder()
		h.Clear(w, httptest.NewRequest(http.MethodDelete, "/api/analysis?persistent=true", nil))
		if w.Code != http.StatusNoContent {
			t.Errorf("Clear() status = %d, want %d", w.Code, http.StatusNoContent)
		}
	})

	t.Run("clear failure", func(t *testing.T) {
		sorter.EXPECT().ClearCache(gomock.Any(), service.ClearRequest{Path: "/inbox/a.txt"}).Return(errors.New("readonly database"))

		w := httptest.NewRecorder()
		h.Clear(w, httptest.NewRequest(http.MethodDelete, "/api/analysis?path=/inbox/a.txt", nil))
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Clear() status = %d, want %d", w.Code, http.StatusInternalServerError)
		}
	})

	t.Run("stats", func(t *testing.T) {
		sorter.EXPECT().Stats(gomock.Any()).Return(service.Stats{
			Stats:           analysis.Stats{CachedCount: 3},
			ClassifierState: "trained",
			TrainingCount:   12,
		}, nil)

		w := httptest.NewRecorder()
		h.Stats(w, httptest.NewRequest(http.MethodGet, "/api/analysis/stats", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Stats() status = %d", w.Code)
		}
		var got map[string]any
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if got["cached_count"] != float64(3) || got["training_count"] != float64(12) {
			t.Errorf("Stats() body = %v", got)
		}
	})
}

func TestAnalysisHandler_Filenames(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "suggestions", wantStatus: http.StatusOK},
		{name: "not analyzed", err: service.ErrNotAnalyzed, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sorter := mocks.NewMockSorter(ctrl)
			var suggestions []storage.NameSuggestion
			if tt.err == nil {
				suggestions = []storage.NameSuggestion{{Text: "Rechnung 2026-03.txt", Confidence: 0.6, Origin: "local"}}
			}
			sorter.EXPECT().SuggestFilenames(gomock.Any(), "/inbox/scan.txt").Return(suggestions, tt.err)

			w := httptest.NewRecorder()
			NewAnalysisHandler(sorter).Filenames(w, httptest.NewRequest(http.MethodGet, "/api/analysis/filenames?path=/inbox/scan.txt", nil))
			if w.Code != tt.wantStatus {
				t.Errorf("Filenames() status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
