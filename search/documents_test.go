package search

import (
	"testing"

	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/kb"
)

func TestIsTechnicalQuery(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"build me a boolean query", true},
		{"what is the CODE for Paraparaumu", true},
		{"Boolean search help", true},
		{"the gates keep alarming", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsTechnicalQuery(tt.query); got != tt.want {
			t.Errorf("IsTechnicalQuery(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestScoreDocumentsTechnicalBoost(t *testing.T) {
	engine := testEngine(t)

	docs := []kb.Document{
		{Name: "general_notes.txt", Path: "SOP/general_notes.txt", Content: "boolean boolean boolean query notes"},
		{Name: "LKP.xlsx", Path: "SOP/Database/LKP.xlsx", Content: "location codes"},
	}

	scored := engine.ScoreDocuments(docs, "boolean query for missing items", true)
	if len(scored) != 2 {
		t.Fatalf("len(scored) = %d, want 2", len(scored))
	}
	// File-name evidence outweighs repeated body hits on a technical query
	if scored[0].Document.Name != "LKP.xlsx" {
		t.Errorf("top document = %s, want LKP.xlsx", scored[0].Document.Name)
	}
}

func TestScoreDocumentsTermScoring(t *testing.T) {
	engine := testEngine(t)

	docs := []kb.Document{
		{Name: "printer_guide.txt", Path: "SOP/printer_guide.txt", Content: "replace the printer toner cartridge"},
		{Name: "gates.txt", Path: "SOP/gates.txt", Content: "security gate alarm reset"},
	}

	scored := engine.ScoreDocuments(docs, "printer toner empty", false)
	if len(scored) != 1 {
		t.Fatalf("len(scored) = %d, want 1", len(scored))
	}
	if scored[0].Document.Name != "printer_guide.txt" {
		t.Errorf("top document = %s, want printer_guide.txt", scored[0].Document.Name)
	}
	// name hit (40) + path hit (15) + whole-word occurrences (2x10) + substring bonuses (2x2)
	if scored[0].Score != 79 {
		t.Errorf("score = %d, want 79", scored[0].Score)
	}
}

func TestScoreDocumentsShortTermsIgnored(t *testing.T) {
	engine := testEngine(t)

	docs := []kb.Document{
		{Name: "wifi.txt", Path: "SOP/wifi.txt", Content: "the apnk wifi has a gate"},
	}

	// Every query token is under five characters, so nothing scores
	if scored := engine.ScoreDocuments(docs, "the wifi is down", false); len(scored) != 0 {
		t.Errorf("expected no scored documents, got %d", len(scored))
	}
}
