package format

import (
	"strings"
	"testing"
)

func TestRenderHTML(t *testing.T) {
	got := RenderHTML("Press the **red** button. [[Done]]")
	if !strings.Contains(got, "<strong>red</strong>") {
		t.Errorf("bold not rendered: %q", got)
	}
	if strings.Contains(got, "[[") {
		t.Errorf("directives should be stripped before rendering: %q", got)
	}
}

func TestRenderHTMLEmpty(t *testing.T) {
	if got := RenderHTML("[[Done]]"); got != "" {
		t.Errorf("directive-only text should render empty, got %q", got)
	}
}
