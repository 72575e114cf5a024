package search

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/kb"
)

func testAssembler(t *testing.T, documentLimit int) *Assembler {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	assembler, err := NewAssembler(NewEngine(nil, logger), documentLimit, 100, 16, logger)
	if err != nil {
		t.Fatalf("NewAssembler: %v", err)
	}
	return assembler
}

func testSnapshot() *kb.Snapshot {
	return &kb.Snapshot{
		Version: 1,
		Variables: []kb.VariableRecord{
			{ID: 7, VariableName: "BRWLOAN", Type: "Translate", Description: "Current loans held by a borrower"},
		},
		Tables: []kb.LookupTable{
			{
				TableID:          "LOC",
				TableDescription: "Location codes",
				TableProperties:  []string{"branch"},
				Rows:             []kb.LookupRow{{ID: "PARA", Description: "Paraparaumu Library"}},
			},
		},
		Documents: []kb.Document{
			{Name: "Boolean Queries.html", Path: "SOP/Boolean Queries.html", Content: "date syntax examples"},
			{Name: "printer_guide.txt", Path: "SOP/printer_guide.txt", Content: "replace the toner cartridge"},
		},
	}
}

func TestBuildContextEmptyQuery(t *testing.T) {
	assembler := testAssembler(t, 3)
	if got := assembler.BuildContext(testSnapshot(), ""); got != "" {
		t.Errorf("empty query should yield empty context, got %d bytes", len(got))
	}
}

func TestBuildContextEmptyKnowledgeBase(t *testing.T) {
	assembler := testAssembler(t, 3)
	snap := &kb.Snapshot{Version: 1}
	if got := assembler.BuildContext(snap, "boolean query for loans"); got != "" {
		t.Errorf("empty knowledge base should yield empty context, got %d bytes", len(got))
	}
}

func TestBuildContextTechnicalQuery(t *testing.T) {
	assembler := testAssembler(t, 3)

	context := assembler.BuildContext(testSnapshot(), "boolean query for borrower loans at paraparaumu")

	if !strings.Contains(context, "--- VQD MATCHES (Top 200 Relevant Variables) ---") {
		t.Error("missing variable block")
	}
	if !strings.Contains(context, "ID: 7\nVariable: BRWLOAN\nType: Translate\nFormat: None\nRecord: None\nDescription: Current loans held by a borrower") {
		t.Error("variable record not formatted as expected")
	}
	if !strings.Contains(context, "--- LKP MATCHES (Lookup Tables & Values) ---") {
		t.Error("missing lookup block")
	}
	if !strings.Contains(context, "Table ID: LOC\nTable Description: Location codes\nProperties: branch\nRows:\n  - ID: PARA\n    Description: Paraparaumu Library\n    Properties: None") {
		t.Error("lookup table not formatted as expected")
	}
	if !strings.Contains(context, "--- SOURCE_FILE: SOP/Boolean Queries.html ---\ndate syntax examples") {
		t.Error("missing source file block")
	}
}

func TestBuildContextNonTechnicalQuerySkipsStructuredBlocks(t *testing.T) {
	assembler := testAssembler(t, 3)

	context := assembler.BuildContext(testSnapshot(), "printer toner replacement steps")

	if strings.Contains(context, "VQD MATCHES") || strings.Contains(context, "LKP MATCHES") {
		t.Error("structured blocks should only appear on technical queries")
	}
	if !strings.Contains(context, "--- SOURCE_FILE: SOP/printer_guide.txt ---") {
		t.Error("missing printer guide document")
	}
}

func TestBuildContextDocumentLimit(t *testing.T) {
	assembler := testAssembler(t, 1)

	snap := &kb.Snapshot{
		Version: 2,
		Documents: []kb.Document{
			{Name: "a.txt", Path: "SOP/a.txt", Content: "printer toner a"},
			{Name: "b.txt", Path: "SOP/b.txt", Content: "printer toner b"},
			{Name: "c.txt", Path: "SOP/c.txt", Content: "printer toner c"},
		},
	}

	context := assembler.BuildContext(snap, "printer toner")
	if got := strings.Count(context, "--- SOURCE_FILE:"); got != 1 {
		t.Errorf("included %d documents, want 1", got)
	}
}

func TestBuildContextDeterministic(t *testing.T) {
	assembler := testAssembler(t, 3)
	snap := testSnapshot()

	first := assembler.BuildContext(snap, "boolean query for loans")
	second := assembler.BuildContext(snap, "boolean query for loans")
	if first != second {
		t.Error("BuildContext should be deterministic for the same snapshot and query")
	}
}
