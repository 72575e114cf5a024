package search

import "strings"

// BaseForm reduces a word to a crude base form: singular, de-tensed,
// de-participled. Exactly one rule fires, checked in this priority order.
// BaseForm is idempotent.
func BaseForm(word string) string {
	word = strings.ToLower(word)

	if strings.HasSuffix(word, "ies") {
		return word[:len(word)-3] + "y" // "bodies" -> "body"
	}
	if strings.HasSuffix(word, "s") && len(word) > 3 {
		return word[:len(word)-1] // "borrowers" -> "borrower"
	}
	if strings.HasSuffix(word, "ed") && len(word) > 3 {
		return word[:len(word)-2] // "borrowed" -> "borrow"
	}
	if strings.HasSuffix(word, "ing") && len(word) > 4 {
		return word[:len(word)-3] // "borrowing" -> "borrow"
	}
	return word
}

func pluralVariants(word string) []string {
	if strings.HasSuffix(word, "s") {
		return []string{word, word[:len(word)-1]}
	}
	return []string{word}
}

// WordsMatch reports whether a query word matches a catalogued word. Every
// base form of the query word's plural variants is tested against every base
// form of the catalog word's variants; a variant matches when it is no
// longer than, and a substring of, the catalog form. The asymmetry is
// deliberate: a short staff query token may match a longer catalog term
// ("borrow" matches "borrowing") but not the reverse.
func WordsMatch(queryWord, catalogWord string) bool {
	for _, q := range pluralVariants(queryWord) {
		qBase := BaseForm(q)
		for _, c := range pluralVariants(catalogWord) {
			cBase := BaseForm(c)
			if len(qBase) > len(cBase) {
				continue
			}
			if strings.Contains(cBase, qBase) {
				return true
			}
		}
	}
	return false
}
