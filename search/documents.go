package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/kb"
	"go.uber.org/zap"
)

// File-name markers that identify technical reference material. On a
// technical query these dominate the score: for a small curated document
// set, the file name is far stronger evidence of relevance than any number
// of body hits.
var technicalNameMarkers = []string{"boolean", "lkp", "json", "vqd", "queries"}

// Per-signal score weights.
const (
	technicalNameBoost = 300
	lookupNameBoost    = 280
	technicalPathBoost = 50
	termNameBoost      = 40
	termPathBoost      = 15
	termOccurrence     = 10
	termSubstringBonus = 2
)

// minTermLength excludes short stopword-like tokens from term matching.
const minTermLength = 5

// IsTechnicalQuery reports whether the utterance is boolean/code related
// and should trigger the structured searches.
func IsTechnicalQuery(query string) bool {
	lower := strings.ToLower(query)
	return strings.Contains(lower, "boolean") ||
		strings.Contains(lower, "query") ||
		strings.Contains(lower, "code")
}

// ScoredDocument is a knowledge document with its relevance score.
type ScoredDocument struct {
	Document kb.Document
	Score    int
}

// ScoreDocuments ranks knowledge documents by lexical overlap with the
// query, boosted by file-name and path signals. Only documents scoring
// above zero are returned, sorted by score descending with ties keeping
// ingestion order.
func (e *Engine) ScoreDocuments(documents []kb.Document, queryText string, technical bool) []ScoredDocument {
	terms := queryTerms(queryText)
	termPatterns := make([]*regexp.Regexp, len(terms))
	for i, term := range terms {
		termPatterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	}

	scored := make([]ScoredDocument, 0, len(documents))
	for _, doc := range documents {
		nameLower := strings.ToLower(doc.Name)
		pathLower := strings.ToLower(doc.Path)
		contentLower := strings.ToLower(doc.Content)

		score := 0
		if technical {
			for _, marker := range technicalNameMarkers {
				if strings.Contains(nameLower, marker) {
					score += technicalNameBoost
					break
				}
			}
			if strings.Contains(nameLower, "lkp") {
				score += lookupNameBoost
			}
			if strings.Contains(pathLower, "boolean") || strings.Contains(pathLower, "database") {
				score += technicalPathBoost
			}
		}

		for i, term := range terms {
			if strings.Contains(nameLower, term) {
				score += termNameBoost
			}
			if strings.Contains(pathLower, term) {
				score += termPathBoost
			}
			score += termOccurrence * len(termPatterns[i].FindAllStringIndex(contentLower, -1))
			if strings.Contains(contentLower, term) {
				score += termSubstringBonus
			}
		}

		if score > 0 {
			scored = append(scored, ScoredDocument{Document: doc, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	e.logger.Debug("Document scoring completed",
		zap.String("query", queryText),
		zap.Bool("technical", technical),
		zap.Int("matches", len(scored)))
	return scored
}

func queryTerms(queryText string) []string {
	var terms []string
	for _, token := range Tokenize(queryText) {
		if len(token) >= minTermLength {
			terms = append(terms, token)
		}
	}
	return terms
}
