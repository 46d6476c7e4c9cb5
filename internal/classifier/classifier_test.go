package classifier

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"

	"docsorter/internal/storage"
	"docsorter/internal/storage/mocks"
)

func newTestStore(t *testing.T) *storage.TrainingRepo {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}
	return storage.NewTrainingRepo(db)
}

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0755); err != nil {
			t.Fatalf("MkdirAll(%s) error = %v", d, err)
		}
	}
}

func learn(t *testing.T, c *Classifier, folder, text string, keywords ...string) {
	t.Helper()
	_, err := c.Learn(context.Background(), LearnRequest{
		DocumentPath:  filepath.Join("/inbox", filepath.Base(folder)+".txt"),
		TargetFolder:  folder,
		ExtractedText: text,
		Keywords:      keywords,
	})
	if err != nil {
		t.Fatalf("Learn() error = %v", err)
	}
}

const (
	invoiceText  = "Rechnung Stadtwerke Strom Abschlag Betrag Zahlung fällig Rechnungsnummer Kundennummer"
	contractText = "Mietvertrag Laufzeit Kündigung Vertragspartner Unterschrift Vermieter Mieter Kaution"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "stop words and short tokens dropped", text: "Die Rechnung und der Betrag ab 12", want: []string{"rechnung", "betrag"}},
		{name: "punctuation splits", text: "Strom-Abschlag, fällig: 2025", want: []string{"strom", "abschlag", "fällig", "2025"}},
		{name: "empty", text: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVectorizer(t *testing.T) {
	v := NewVectorizer(0)
	vectors := v.Fit([]string{invoiceText, contractText, ""})

	if vectors[2] != nil {
		t.Errorf("empty document vector = %v, want nil", vectors[2])
	}
	if got := Cosine(vectors[0], vectors[0]); math.Abs(got-1) > 1e-9 {
		t.Errorf("self similarity = %v, want 1", got)
	}
	if got := Cosine(vectors[0], vectors[1]); got != 0 {
		t.Errorf("disjoint similarity = %v, want 0", got)
	}

	query := v.Transform("Rechnung Strom Stadtwerke")
	if got := Cosine(query, vectors[0]); got <= 0.1 {
		t.Errorf("related similarity = %v, want > 0.1", got)
	}
	if got := v.Transform("völlig unbekannte wörter"); got != nil {
		t.Errorf("Transform() of unknown words = %v, want nil", got)
	}
}

func TestVectorizer_MaxFeatures(t *testing.T) {
	v := NewVectorizer(3)
	v.Fit([]string{"alpha beta gamma delta epsilon", "alpha beta gamma"})
	if v.Features() != 3 {
		t.Errorf("Features() = %d, want 3", v.Features())
	}
}

func TestFolderIndex_Resolve(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "Finanzen/Rechnungen", "Verträge", ".git/objects")
	idx := NewFolderIndex([]string{root}, nil)

	tests := []struct {
		name        string
		learnedPath string
		learnedName string
		want        string
		wantOK      bool
	}{
		{name: "existing path", learnedPath: filepath.Join(root, "Verträge"), learnedName: "Verträge", want: filepath.Join(root, "Verträge"), wantOK: true},
		{name: "moved folder by name", learnedPath: "/old/archive/Rechnungen", learnedName: "Rechnungen", want: filepath.Join(root, "Finanzen", "Rechnungen"), wantOK: true},
		{name: "case insensitive", learnedPath: "/old/rechnungen", learnedName: "RECHNUNGEN", want: filepath.Join(root, "Finanzen", "Rechnungen"), wantOK: true},
		{name: "root itself", learnedPath: "/gone/" + filepath.Base(root), learnedName: filepath.Base(root), want: root, wantOK: true},
		{name: "hidden folders skipped", learnedPath: "/old/objects", learnedName: "objects", wantOK: false},
		{name: "unknown folder", learnedPath: "/old/Steuer", learnedName: "Steuer", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := idx.Resolve(tt.learnedPath, tt.learnedName)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Resolve() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFolderIndex_RebuildsOnRootChange(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	mkdirs(t, first, "Bank")
	mkdirs(t, second, "Versicherung")

	idx := NewFolderIndex([]string{first}, nil)
	if _, ok := idx.Lookup("versicherung"); ok {
		t.Fatal("Lookup() found a folder outside the roots")
	}

	// Same roots do not rebuild, so folders created later stay unknown
	mkdirs(t, first, "Arzt")
	idx.SetRoots([]string{first})
	if _, ok := idx.Lookup("arzt"); ok {
		t.Error("index rebuilt although roots did not change")
	}

	idx.SetRoots([]string{first, second})
	for _, name := range []string{"bank", "arzt", "versicherung"} {
		if _, ok := idx.Lookup(name); !ok {
			t.Errorf("Lookup(%q) failed after root change", name)
		}
	}
}

func TestClassifier_StateTransitions(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "Rechnungen")
	c, err := New(context.Background(), newTestStore(t), []string{root})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if c.State() != StateUntrained {
		t.Errorf("State() = %v, want untrained", c.State())
	}
	got, err := c.Suggest(context.Background(), invoiceText, []string{"rechnung"}, 5)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("untrained Suggest() = %+v, want empty", got)
	}

	learn(t, c, filepath.Join(root, "Rechnungen"), invoiceText, "rechnung")
	learn(t, c, filepath.Join(root, "Rechnungen"), invoiceText, "rechnung")
	if c.State() != StateTrained {
		t.Errorf("State() after Learn = %v, want trained", c.State())
	}
	if n, _ := c.TrainingCount(context.Background()); n != 2 {
		t.Errorf("TrainingCount() = %d, want 2", n)
	}
}

func TestClassifier_InvoiceAndContractRanking(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "Rechnungen", "Verträge")
	invoices, contracts := filepath.Join(root, "Rechnungen"), filepath.Join(root, "Verträge")

	c, err := New(context.Background(), newTestStore(t), []string{root})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		learn(t, c, invoices, invoiceText, "rechnung", "energie")
		learn(t, c, contracts, contractText, "vertrag")
	}

	tests := []struct {
		name     string
		text     string
		keywords []string
		want     string
		other    string
	}{
		{name: "invoice", text: "Ihre Rechnung der Stadtwerke, Betrag fällig zum Monatsende", keywords: []string{"rechnung"}, want: invoices, other: contracts},
		{name: "contract", text: "Mietvertrag mit Kündigung und Kaution", keywords: []string{"vertrag"}, want: contracts, other: invoices},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Suggest(context.Background(), tt.text, tt.keywords, 3)
			if err != nil {
				t.Fatalf("Suggest() error = %v", err)
			}
			if len(got) == 0 || got[0].FolderPath != tt.want {
				t.Fatalf("Suggest() = %+v, want %s first", got, tt.want)
			}
			if got[0].Confidence > DefaultWeights().SimilarityCap {
				t.Errorf("confidence %v above cap", got[0].Confidence)
			}
			for _, s := range got[1:] {
				if s.FolderPath == tt.other && s.Confidence >= got[0].Confidence {
					t.Errorf("%s ranked as high as %s", tt.other, tt.want)
				}
			}
			for i := 1; i < len(got); i++ {
				if got[i].Confidence > got[i-1].Confidence {
					t.Errorf("suggestions not sorted: %+v", got)
				}
			}
		})
	}
}

func TestClassifier_KeywordsOnlyQuery(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "Invoices", "Contracts")
	invoices, contracts := filepath.Join(root, "Invoices"), filepath.Join(root, "Contracts")

	c, err := New(context.Background(), newTestStore(t), []string{root})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	learn(t, c, invoices, invoiceText, "invoice")
	learn(t, c, invoices, invoiceText, "invoice")
	learn(t, c, contracts, contractText, "contract")

	got, err := c.Suggest(context.Background(), "", []string{"invoice"}, 5)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Suggest() = %+v, want Invoices and Contracts", got)
	}
	if got[0].FolderPath != invoices || got[0].Signal != SignalKeywords || math.Abs(got[0].Confidence-0.8) > 1e-9 {
		t.Errorf("first = %+v, want Invoices from keywords at 0.8", got[0])
	}
	if got[1].FolderPath != contracts || got[1].Signal != SignalFrequency || math.Abs(got[1].Confidence-0.01) > 1e-9 {
		t.Errorf("second = %+v, want Contracts from frequency at 0.01", got[1])
	}
}

func TestClassifier_LearnIndexesNewFolder(t *testing.T) {
	root := t.TempDir()
	c, err := New(context.Background(), newTestStore(t), []string{root})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	mkdirs(t, root, "Kfz/Werkstatt")
	learn(t, c, filepath.Join(root, "Kfz", "Werkstatt"), "Inspektion Ölwechsel Bremsen", "handwerker")

	if got, ok := c.index.Lookup("werkstatt"); !ok || got != filepath.Join(root, "Kfz", "Werkstatt") {
		t.Errorf("Lookup(werkstatt) = (%q, %v) after Learn, want the new folder", got, ok)
	}
	if _, ok := c.index.Lookup("kfz"); !ok {
		t.Error("Lookup(kfz) failed, parent of the new folder not indexed")
	}
}

func TestClassifier_SurvivesReorganizedDestination(t *testing.T) {
	oldRoot, newRoot := t.TempDir(), t.TempDir()
	mkdirs(t, oldRoot, "Rechnungen")
	mkdirs(t, newRoot, "Archiv/rechnungen")

	c, err := New(context.Background(), newTestStore(t), []string{oldRoot})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	learn(t, c, filepath.Join(oldRoot, "Rechnungen"), invoiceText, "rechnung")

	if err := os.RemoveAll(oldRoot); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}
	c.SetRoots([]string{newRoot})

	got, err := c.Suggest(context.Background(), invoiceText, []string{"rechnung"}, 3)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	want := filepath.Join(newRoot, "Archiv", "rechnungen")
	if len(got) == 0 || got[0].FolderPath != want {
		t.Fatalf("Suggest() = %+v, want %s", got, want)
	}
	for _, s := range got {
		if s.FolderPath == filepath.Join(oldRoot, "Rechnungen") {
			t.Errorf("suggested a folder that no longer exists: %+v", s)
		}
	}
}

func TestClassifier_DropsUnresolvableFolders(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "Bank")
	c, err := New(context.Background(), newTestStore(t), []string{root})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	learn(t, c, filepath.Join(root, "Bank"), "Kontoauszug Girokonto Überweisung", "bank")
	learn(t, c, "/nowhere/Gelöscht", "Kontoauszug Girokonto Dauerauftrag", "bank")

	got, err := c.Suggest(context.Background(), "Kontoauszug Girokonto", []string{"bank"}, 5)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(got) != 1 || got[0].FolderName != "Bank" {
		t.Errorf("Suggest() = %+v, want only Bank", got)
	}
}

func TestClassifier_FrequencyFallback(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "Sonstiges")
	c, err := New(context.Background(), newTestStore(t), []string{root})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for i := 0; i < 40; i++ {
		learn(t, c, filepath.Join(root, "Sonstiges"), "")
	}

	got, err := c.Suggest(context.Background(), "irgendein Text", nil, 3)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Suggest() = %+v, want one frequency suggestion", got)
	}
	if got[0].Signal != SignalFrequency || got[0].Confidence != 0.3 {
		t.Errorf("suggestion = %+v, want frequency capped at 0.3", got[0])
	}
}

func TestClassifier_KeepsYearFolders(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "Steuer 2025/Banken", "Steuer 2026/Banken")
	learned := filepath.Join(root, "Steuer 2025", "Banken")

	c, err := New(context.Background(), newTestStore(t), []string{root})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	learn(t, c, learned, "Jahressteuerbescheinigung Kapitalerträge Depot Bank", "steuer", "bank")

	got, err := c.SuggestWithSubfolders(context.Background(), SubfolderRequest{
		Text:         "Jahressteuerbescheinigung Kapitalerträge Depot",
		Keywords:     []string{"steuer"},
		DetectedDate: "2026-01-15",
		RootFolders:  []string{root},
		Max:          3,
	})
	if err != nil {
		t.Fatalf("SuggestWithSubfolders() error = %v", err)
	}
	if len(got) == 0 {
		t.Fatal("SuggestWithSubfolders() returned nothing")
	}
	if got[0].FolderPath != learned {
		t.Errorf("FolderPath = %q, want learned %q", got[0].FolderPath, learned)
	}
	wantRel := filepath.Base(root) + "/Steuer 2025/Banken"
	if got[0].RelativePath != wantRel {
		t.Errorf("RelativePath = %q, want %q", got[0].RelativePath, wantRel)
	}
}

func TestClassifier_SuggestSubfolders(t *testing.T) {
	root := t.TempDir()
	parent := filepath.Join(root, "Versicherung")
	mkdirs(t, parent, "Auto", "Haftpflicht", "Hausrat", ".cache")

	c, err := New(context.Background(), newTestStore(t), []string{root})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	learn(t, c, filepath.Join(parent, "Hausrat"), "Hausratversicherung Police")

	got, err := c.SuggestSubfolders(context.Background(), parent, 3)
	if err != nil {
		t.Fatalf("SuggestSubfolders() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("SuggestSubfolders() = %+v, want 3", got)
	}
	if got[0].FolderName != "Hausrat" || got[0].Signal != SignalLearned || got[0].Confidence != 0.02 {
		t.Errorf("first = %+v, want learned Hausrat at 0.02", got[0])
	}
	for _, s := range got[1:] {
		if s.Signal != SignalExisting || s.Confidence != 0.2 {
			t.Errorf("fallback = %+v, want existing subfolder at 0.2", s)
		}
		if s.FolderName == ".cache" || s.FolderName == "Hausrat" {
			t.Errorf("unexpected fallback %q", s.FolderName)
		}
	}
}

func TestClassifier_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockTrainingStore(ctrl)
	boom := errors.New("database locked")

	store.EXPECT().ListEntries(gomock.Any()).Return(nil, boom)
	if _, err := New(context.Background(), store, nil); !errors.Is(err, boom) {
		t.Errorf("New() error = %v, want %v", err, boom)
	}

	store.EXPECT().ListEntries(gomock.Any()).Return(nil, nil)
	c, err := New(context.Background(), store, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	store.EXPECT().AddEntry(gomock.Any(), gomock.Any()).Return(nil, boom)
	if _, err := c.Learn(context.Background(), LearnRequest{TargetFolder: "/x/Bank"}); !errors.Is(err, boom) {
		t.Errorf("Learn() error = %v, want %v", err, boom)
	}
	if _, err := c.Learn(context.Background(), LearnRequest{}); err == nil {
		t.Error("Learn() without target folder succeeded")
	}

	store.EXPECT().MostUsedFolders(gomock.Any(), 10).Return(nil, boom)
	if _, err := c.Suggest(context.Background(), "text", nil, 5); !errors.Is(err, boom) {
		t.Errorf("Suggest() error = %v, want %v", err, boom)
	}
}
