package search

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/kb"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/prompts"
)

// Assembler builds the grounding context that is prepended to every model
// call. Retrieval is deterministic for a given snapshot, so assembled
// contexts are cached keyed by snapshot version and query text.
type Assembler struct {
	engine         *Engine
	logger         *zap.Logger
	cache          *lru.Cache
	documentLimit  int
	structuredTopN int
	preamble       string
}

func NewAssembler(engine *Engine, documentLimit, structuredTopN, cacheSize int, logger *zap.Logger) (*Assembler, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating context cache: %w", err)
	}
	return &Assembler{
		engine:         engine,
		logger:         logger,
		cache:          cache,
		documentLimit:  documentLimit,
		structuredTopN: structuredTopN,
		preamble:       prompts.SystemInstruction() + prompts.BooleanMandate(),
	}, nil
}

// BuildContext assembles the system context for a query against a snapshot:
// the standing instructions, then (for technical queries) the matching
// variable and lookup blocks, then the top scoring knowledge documents in
// full. An empty query or an empty knowledge base yields an empty context.
func (a *Assembler) BuildContext(snap *kb.Snapshot, query string) string {
	if query == "" {
		return ""
	}
	if len(snap.Documents) == 0 && len(snap.Variables) == 0 {
		return ""
	}

	cacheKey := fmt.Sprintf("%d\x00%s", snap.Version, query)
	if cached, ok := a.cache.Get(cacheKey); ok {
		return cached.(string)
	}

	technical := IsTechnicalQuery(query)

	var b strings.Builder
	b.WriteString(a.preamble)

	if technical && len(snap.Variables) > 0 {
		if matches := a.engine.SearchVariables(snap.Variables, query, a.structuredTopN); len(matches) > 0 {
			b.WriteString("\n\n--- VQD MATCHES (Top 200 Relevant Variables) ---\n")
			b.WriteString(formatVariables(matches))
			a.logger.Debug("Variable context injected", zap.Int("matches", len(matches)))
		}
	}

	if technical && len(snap.Tables) > 0 {
		if matches := a.engine.SearchLookupTables(snap.Tables, query, a.structuredTopN); len(matches) > 0 {
			b.WriteString("\n\n--- LKP MATCHES (Lookup Tables & Values) ---\n")
			b.WriteString(formatTables(matches))
			a.logger.Debug("Lookup context injected", zap.Int("matches", len(matches)))
		}
	}

	scored := a.engine.ScoreDocuments(snap.Documents, query, technical)
	for i, doc := range scored {
		if i >= a.documentLimit {
			break
		}
		b.WriteString("\n\n--- SOURCE_FILE: ")
		b.WriteString(doc.Document.Path)
		b.WriteString(" ---\n")
		b.WriteString(doc.Document.Content)
	}

	context := b.String()
	a.cache.Add(cacheKey, context)
	return context
}

func formatVariables(matches []kb.VariableRecord) string {
	blocks := make([]string, len(matches))
	for i, v := range matches {
		blocks[i] = fmt.Sprintf("ID: %d\nVariable: %s\nType: %s\nFormat: %s\nRecord: %s\nDescription: %s",
			v.ID, v.VariableName, v.Type, orNone(v.Format), orNone(v.RecordType), v.Description)
	}
	return strings.Join(blocks, "\n\n")
}

func formatTables(matches []TableMatch) string {
	blocks := make([]string, len(matches))
	for i, t := range matches {
		rows := make([]string, len(t.MatchedRows))
		for j, row := range t.MatchedRows {
			rows[j] = fmt.Sprintf("  - ID: %s\n    Description: %s\n    Properties: %s",
				row.ID, row.Description, orNone(row.Properties))
		}
		properties := "None"
		if len(t.TableProperties) > 0 {
			properties = strings.Join(t.TableProperties, ", ")
		}
		blocks[i] = fmt.Sprintf("Table ID: %s\nTable Description: %s\nProperties: %s\nRows:\n%s",
			t.TableID, t.TableDescription, properties, strings.Join(rows, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
