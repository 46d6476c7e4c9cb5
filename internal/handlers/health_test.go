package handlers

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/mock/gomock"

	"docsorter/internal/analysis"
	"docsorter/internal/service/mocks"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type modelFunc func(ctx context.Context) (bool, error)

func (f modelFunc) ModelLoaded(ctx context.Context) (bool, error) { return f(ctx) }

func TestHealthHandler_ServeHTTP(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })

	tests := []struct {
		name       string
		method     string
		db         Pinger
		model      ModelChecker
		wantStatus int
		wantHealth string
		wantModel  string
	}{
		{
			name:       "healthy without model",
			method:     http.MethodGet,
			db:         ok,
			wantStatus: http.StatusOK,
			wantHealth: "healthy",
			wantModel:  "disabled",
		},
		{
			name:       "healthy with loaded model",
			method:     http.MethodGet,
			db:         ok,
			model:      modelFunc(func(context.Context) (bool, error) { return true, nil }),
			wantStatus: http.StatusOK,
			wantHealth: "healthy",
			wantModel:  "ok",
		},
		{
			name:       "model not loaded degrades",
			method:     http.MethodGet,
			db:         ok,
			model:      modelFunc(func(context.Context) (bool, error) { return false, nil }),
			wantStatus: http.StatusOK,
			wantHealth: "degraded",
			wantModel:  "error",
		},
		{
			name:       "database down",
			method:     http.MethodGet,
			db:         pingFunc(func(context.Context) error { return errors.New("database is closed") }),
			model:      modelFunc(func(context.Context) (bool, error) { return false, errors.New("connection refused") }),
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "unhealthy",
			wantModel:  "error",
		},
		{
			name:       "method not allowed",
			method:     http.MethodPost,
			db:         ok,
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHealthHandler(tt.db, tt.model).ServeHTTP(w, httptest.NewRequest(tt.method, "/api/health", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantHealth == "" {
				return
			}
			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantHealth {
				t.Errorf("status = %q, want %q", resp.Status, tt.wantHealth)
			}
			if resp.Checks["language_model"] != tt.wantModel {
				t.Errorf("language_model check = %q, want %q", resp.Checks["language_model"], tt.wantModel)
			}
		})
	}
}

func TestEventsHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	sorter := mocks.NewMockSorter(ctrl)

	events := make(chan analysis.Event, 2)
	events <- analysis.Event{Kind: analysis.EventAnalyzed, Path: "/inbox/a.txt"}
	events <- analysis.Event{Kind: analysis.EventSuggestionsReady, Path: "/inbox/a.txt"}
	close(events)

	var cancelled atomic.Bool
	sorter.EXPECT().Subscribe().Return((<-chan analysis.Event)(events), func() { cancelled.Store(true) })

	server := httptest.NewServer(NewEventsHandler(sorter))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	var kinds []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if kind, ok := strings.CutPrefix(scanner.Text(), "event: "); ok {
			kinds = append(kinds, kind)
		}
	}
	if strings.Join(kinds, ",") != "analyzed,suggestions_ready" {
		t.Errorf("events = %v", kinds)
	}
	if !cancelled.Load() {
		t.Error("subscription was not cancelled")
	}
}

func TestEventsHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := httptest.NewRecorder()
	NewEventsHandler(mocks.NewMockSorter(ctrl)).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/events", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}
