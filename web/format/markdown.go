package format

import (
	"strings"

	"github.com/gomarkdown/markdown"

	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/chat"
)

// RenderHTML converts a model reply to HTML for display. Button directives
// are stripped first; the front end renders them separately from the parsed
// options list.
func RenderHTML(text string) string {
	cleaned := strings.TrimSpace(chat.StripDirectives(text))
	if cleaned == "" {
		return ""
	}
	return string(markdown.ToHTML([]byte(cleaned), nil, nil))
}
