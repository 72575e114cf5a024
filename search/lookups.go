package search

import (
	"sort"

	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/kb"
	"go.uber.org/zap"
)

// TableMatch pairs lookup-table metadata with the subset of its rows that
// matched the query. The unmatched rows are not carried.
type TableMatch struct {
	TableID          string
	TableDescription string
	TableProperties  []string
	MatchedRows      []kb.LookupRow
}

// SearchLookupTables finds lookup rows whose description or code matches the
// expanded query. A query token that belongs to a keyword cluster unions the
// entire cluster into the expansion set. Tables with at least one matching
// row are ranked by matching-row count, ties keeping catalog order.
func (e *Engine) SearchLookupTables(tables []kb.LookupTable, queryText string, topN int) []TableMatch {
	inputWords := Tokenize(queryText)
	expanded := e.expandLookupQuery(inputWords)
	if len(expanded) == 0 {
		return nil
	}

	results := make([]TableMatch, 0, len(tables))
	for _, table := range tables {
		var matchedRows []kb.LookupRow
		for _, row := range table.Rows {
			rowWords := Tokenize(row.Description + " " + row.ID)
			if rowMatches(expanded, rowWords) {
				matchedRows = append(matchedRows, row)
			}
		}
		if len(matchedRows) > 0 {
			results = append(results, TableMatch{
				TableID:          table.TableID,
				TableDescription: table.TableDescription,
				TableProperties:  table.TableProperties,
				MatchedRows:      matchedRows,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return len(results[i].MatchedRows) > len(results[j].MatchedRows)
	})
	if topN >= 0 && len(results) > topN {
		results = results[:topN]
	}

	e.logger.Debug("Lookup search completed",
		zap.String("query", queryText),
		zap.Int("tables", len(results)))
	return results
}

func rowMatches(expanded []string, rowWords []string) bool {
	for _, inputWord := range expanded {
		for _, rowWord := range rowWords {
			if WordsMatch(inputWord, rowWord) {
				return true
			}
		}
	}
	return false
}

// expandLookupQuery unions every cluster that contains any query token.
func (e *Engine) expandLookupQuery(inputWords []string) []string {
	clusters := [][]string{
		e.clusters.Lookup.Location,
		e.clusters.Lookup.Category,
		e.clusters.Lookup.Collection,
		e.clusters.Lookup.ItemStatus,
	}

	seen := make(map[string]struct{}, len(inputWords))
	expanded := make([]string, 0, len(inputWords))
	add := func(word string) {
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		expanded = append(expanded, word)
	}

	for _, word := range inputWords {
		add(word)
	}
	for _, word := range inputWords {
		for _, cluster := range clusters {
			if containsTerm(cluster, word) {
				for _, term := range cluster {
					add(term)
				}
			}
		}
	}
	return expanded
}

func containsTerm(cluster []string, word string) bool {
	for _, term := range cluster {
		if term == word {
			return true
		}
	}
	return false
}
