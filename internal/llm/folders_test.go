package llm

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"docsorter/internal/classifier"
)

func TestParseFolderReply(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		want   classifier.FolderAdvice
		wantOK bool
	}{
		{
			name:   "line format",
			reply:  "FOLDER: Rechnungen\nREASON: Stromrechnung der Stadtwerke\nCONFIDENCE: 80",
			want:   classifier.FolderAdvice{Folder: "Rechnungen", Reason: "Stromrechnung der Stadtwerke", Confidence: 0.8},
			wantOK: true,
		},
		{
			name:   "german labels in markdown",
			reply:  "**ORDNER:** [Versicherung]\n**BEGRÜNDUNG:** Police\n**KONFIDENZ:** 65%",
			want:   classifier.FolderAdvice{Folder: "Versicherung", Reason: "Police", Confidence: 0.65},
			wantOK: true,
		},
		{
			name:   "json in code fence",
			reply:  "```json\n{\"folder\": \"Steuer\", \"reason\": \"tax\", \"confidence\": \"90\"}\n```",
			want:   classifier.FolderAdvice{Folder: "Steuer", Reason: "tax", Confidence: 0.9},
			wantOK: true,
		},
		{
			name:   "missing confidence",
			reply:  "FOLDER: Steuer",
			want:   classifier.FolderAdvice{Folder: "Steuer", Confidence: 0.5},
			wantOK: true,
		},
		{
			name:   "no folder named",
			reply:  "I am not sure where this belongs.",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFolderReply(tt.reply)
			if ok != tt.wantOK {
				t.Fatalf("ParseFolderReply() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFolderReply() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildFolderPrompt(t *testing.T) {
	prompt := BuildFolderPrompt(classifier.FolderQuery{
		Text:         "Beitragsrechnung",
		Folders:      []string{"Rechnungen", "Versicherung"},
		Keywords:     []string{"versicherung"},
		DetectedDate: "2025-03-01",
	})
	for _, want := range []string{"- Rechnungen\n", "- Versicherung\n", "DETECTED CATEGORIES: versicherung", "2025-03-01", "FOLDER:"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestFolderAdvisor(t *testing.T) {
	query := classifier.FolderQuery{Text: "Police", Folders: []string{"Versicherung"}}

	tests := []struct {
		name    string
		chat    Chatter
		query   classifier.FolderQuery
		want    *classifier.FolderAdvice
		wantErr bool
	}{
		{
			name: "folder chosen",
			chat: chatFunc(func(_ context.Context, messages []Message, _ ChatParams) (string, error) {
				if len(messages) != 2 || !strings.Contains(messages[1].Content, "- Versicherung") {
					t.Errorf("unexpected messages %+v", messages)
				}
				return "FOLDER: Versicherung\nCONFIDENCE: 70", nil
			}),
			query: query,
			want:  &classifier.FolderAdvice{Folder: "Versicherung", Confidence: 0.7},
		},
		{
			name: "reply without folder",
			chat: chatFunc(func(context.Context, []Message, ChatParams) (string, error) {
				return "no idea", nil
			}),
			query: query,
		},
		{
			name: "no folders offered",
			chat: chatFunc(func(context.Context, []Message, ChatParams) (string, error) {
				t.Error("Chat() called without folders")
				return "", nil
			}),
			query: classifier.FolderQuery{Text: "Police"},
		},
		{
			name: "chat failure",
			chat: chatFunc(func(context.Context, []Message, ChatParams) (string, error) {
				return "", errors.New("timeout")
			}),
			query:   query,
			wantErr: true,
		},
		{
			name:  "unavailable without chat",
			query: query,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewFolderAdvisor(tt.chat, nil)
			got, err := a.ClassifyFolder(context.Background(), tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ClassifyFolder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ClassifyFolder() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
