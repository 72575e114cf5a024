package kb

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML reduces an HTML page to whitespace-normalized plain text.
// Script and style bodies, comments, and all tags are discarded.
func StripHTML(src string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(src))

	var b strings.Builder
	skip := "" // tag whose text content is being discarded
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style":
				skip = string(name)
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if skip == string(name) {
				skip = ""
			}
		case html.TextToken:
			if skip == "" {
				b.Write(tokenizer.Text())
				b.WriteByte(' ')
			}
		}
	}
}
