package search

import (
	"sort"
	"strings"

	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/kb"
	"go.uber.org/zap"
)

// SearchVariables ranks variable-dictionary records against free-form query
// text. The query is expanded with synonym clusters first; a record scores
// one point for every expanded query token that matches at least one token
// of its description. Zero-score records are dropped, ties keep catalog
// order, and at most topN records are returned.
func (e *Engine) SearchVariables(index []kb.VariableRecord, queryText string, topN int) []kb.VariableRecord {
	inputWords := make([]string, 0, 16)
	for _, term := range e.expandVariableQuery(queryText) {
		inputWords = append(inputWords, Tokenize(term)...)
	}
	if len(inputWords) == 0 {
		return nil
	}

	type scoredRecord struct {
		record kb.VariableRecord
		score  int
	}
	scored := make([]scoredRecord, 0, len(index))
	for _, record := range index {
		descWords := Tokenize(record.Description)
		score := 0
		for _, inputWord := range inputWords {
			for _, descWord := range descWords {
				if WordsMatch(inputWord, descWord) {
					score++
					break
				}
			}
		}
		if score > 0 {
			scored = append(scored, scoredRecord{record: record, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if topN >= 0 && len(scored) > topN {
		scored = scored[:topN]
	}

	matches := make([]kb.VariableRecord, len(scored))
	for i, s := range scored {
		matches[i] = s.record
	}

	e.logger.Debug("Variable search completed",
		zap.String("query", queryText),
		zap.Int("matches", len(matches)))
	return matches
}

// expandVariableQuery unions whole synonym clusters into the expansion set
// whenever any cluster member appears in the raw query.
func (e *Engine) expandVariableQuery(queryText string) []string {
	lower := strings.ToLower(queryText)
	containsAny := func(cluster []string) bool {
		for _, term := range cluster {
			if strings.Contains(lower, strings.ToLower(term)) {
				return true
			}
		}
		return false
	}

	terms := []string{queryText}
	if containsAny(e.clusters.Variable.Borrower) {
		terms = append(terms, e.clusters.Variable.Borrower...)
	}
	if containsAny(e.clusters.Variable.Institution) {
		terms = append(terms, e.clusters.Variable.Institution...)
	}
	if containsAny(e.clusters.Variable.Location) {
		// A location hit pulls in the institution terms, not the location
		// terms. TODO: confirm with the Spydus query owners whether this
		// cross-wiring is intentional; ranking parity depends on it today.
		terms = append(terms, e.clusters.Variable.Institution...)
	}

	seen := make(map[string]struct{}, len(terms))
	unique := terms[:0]
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		unique = append(unique, term)
	}
	return unique
}
