package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/mock/gomock"

	"docsorter/internal/classifier"
	"docsorter/internal/config"
	"docsorter/internal/service"
	"docsorter/internal/service/mocks"
	"docsorter/internal/storage"
)

func TestFolderHandler_Suggest(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		mockSetup  func(*mocks.MockSorter)
		wantStatus int
		wantCount  int
	}{
		{
			name: "ranked folders",
			body: SuggestRequest{Path: "/inbox/rechnung.txt", Max: 3},
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().SuggestFolders(gomock.Any(), service.FolderRequest{Path: "/inbox/rechnung.txt", Max: 3}).
					Return([]classifier.Suggestion{
						{FolderPath: "/archiv/Rechnungen", FolderName: "Rechnungen", Confidence: 0.9, Signal: classifier.SignalSimilarity},
						{FolderPath: "/archiv/Vertraege", FolderName: "Vertraege", Confidence: 0.3, Signal: classifier.SignalFrequency},
					}, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name: "untrained returns empty list",
			body: SuggestRequest{Path: "/inbox/rechnung.txt"},
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().SuggestFolders(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  0,
		},
		{
			name: "not analyzed",
			body: SuggestRequest{Path: "/inbox/rechnung.txt"},
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().SuggestFolders(gomock.Any(), gomock.Any()).Return(nil, service.ErrNotAnalyzed)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "invalid JSON body",
			body:       "{",
			mockSetup:  func(m *mocks.MockSorter) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sorter := mocks.NewMockSorter(ctrl)
			tt.mockSetup(sorter)

			w := httptest.NewRecorder()
			NewFolderHandler(sorter).Suggest(w, httptest.NewRequest(http.MethodPost, "/api/folders/suggest", encodeBody(t, tt.body)))

			if w.Code != tt.wantStatus {
				t.Fatalf("Suggest() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp SuggestResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Suggestions == nil || len(resp.Suggestions) != tt.wantCount {
				t.Errorf("Suggest() suggestions = %v, want %d entries", resp.Suggestions, tt.wantCount)
			}
		})
	}
}

func TestFolderHandler_Subfolders(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		mockSetup  func(*mocks.MockSorter)
		wantStatus int
	}{
		{
			name:  "with limit",
			query: "?parent=/archiv/Steuer&max=2",
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().SuggestSubfolders(gomock.Any(), "/archiv/Steuer", 2).Return([]classifier.Suggestion{
					{FolderPath: "/archiv/Steuer/2026", FolderName: "2026", Confidence: 0.2, Signal: classifier.SignalExisting},
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad limit",
			query:      "?parent=/archiv/Steuer&max=two",
			mockSetup:  func(m *mocks.MockSorter) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sorter := mocks.NewMockSorter(ctrl)
			tt.mockSetup(sorter)

			w := httptest.NewRecorder()
			NewFolderHandler(sorter).Subfolders(w, httptest.NewRequest(http.MethodGet, "/api/folders/subfolders"+tt.query, nil))
			if w.Code != tt.wantStatus {
				t.Errorf("Subfolders() status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestFolderHandler_Learn(t *testing.T) {
	tests := []struct {
		name       string
		mockSetup  func(*mocks.MockSorter)
		wantStatus int
	}{
		{
			name: "stored",
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().Learn(gomock.Any(), service.LearnRequest{
					Path:         "/inbox/rechnung.txt",
					TargetFolder: "/archiv/Rechnungen",
					NewFilename:  "2026-03_Stadtwerke.txt",
				}).Return(&storage.TrainingEntry{
					ID:                 "0b6f",
					TargetFolderPath:   "/archiv/Rechnungen",
					TargetRelativePath: "archiv/Rechnungen",
					CreatedAt:          time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC),
				}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "document gone",
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().Learn(gomock.Any(), gomock.Any()).Return(nil, service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "store failure",
			mockSetup: func(m *mocks.MockSorter) {
				m.EXPECT().Learn(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk full"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sorter := mocks.NewMockSorter(ctrl)
			tt.mockSetup(sorter)

			body := encodeBody(t, LearnRequest{
				Path:         "/inbox/rechnung.txt",
				TargetFolder: "/archiv/Rechnungen",
				NewFilename:  "2026-03_Stadtwerke.txt",
			})
			w := httptest.NewRecorder()
			NewFolderHandler(sorter).Learn(w, httptest.NewRequest(http.MethodPost, "/api/folders/learn", body))

			if w.Code != tt.wantStatus {
				t.Fatalf("Learn() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusCreated {
				var resp LearnResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.ID != "0b6f" || resp.CreatedAt != "2026-03-15T09:30:00Z" {
					t.Errorf("Learn() response = %+v", resp)
				}
			}
		})
	}
}

func TestSettingsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	sorter := mocks.NewMockSorter(ctrl)
	h := NewSettingsHandler(sorter)

	current := config.Settings{PersistAnalysisCache: true, MaxSuggestions: 5}

	t.Run("get", func(t *testing.T) {
		sorter.EXPECT().Settings().Return(current)

		w := httptest.NewRecorder()
		h.Get(w, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
		var got config.Settings
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if got.MaxSuggestions != 5 || !got.PersistAnalysisCache {
			t.Errorf("Get() = %+v", got)
		}
	})

	t.Run("update", func(t *testing.T) {
		sorter.EXPECT().UpdateSettings(gomock.Any(), gomock.Cond(func(x any) bool {
			p, ok := x.(service.SettingsPatch)
			return ok && p.MaxSuggestions != nil && *p.MaxSuggestions == 8 && p.SuggestionPrecache == nil
		})).Return(config.Settings{MaxSuggestions: 8}, nil)

		w := httptest.NewRecorder()
		h.Update(w, httptest.NewRequest(http.MethodPatch, "/api/settings", encodeBody(t, `{"max_suggestions": 8}`)))
		if w.Code != http.StatusOK {
			t.Errorf("Update() status = %d, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("update rejected", func(t *testing.T) {
		sorter.EXPECT().UpdateSettings(gomock.Any(), gomock.Any()).
			Return(config.Settings{}, &service.ValidationError{Field: "settings", Message: "max_suggestions must be between 1 and 20"})

		w := httptest.NewRecorder()
		h.Update(w, httptest.NewRequest(http.MethodPatch, "/api/settings", encodeBody(t, `{"max_suggestions": 99}`)))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Update() status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}
