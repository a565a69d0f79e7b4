package markdown

import (
	"strings"
	"testing"
)

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("boom")
}

func TestSafeRender_RecoversFromRendererPanic(t *testing.T) {
	const renderWidth = 20

	rendererMu.Lock()
	prev, hadPrev := renderers[renderWidth]
	renderers[renderWidth] = panicRenderer{}
	rendererMu.Unlock()

	defer func() {
		rendererMu.Lock()
		if hadPrev {
			renderers[renderWidth] = prev
		} else {
			delete(renderers, renderWidth)
		}
		rendererMu.Unlock()
	}()

	out := SafeRender(renderWidth, "hello\n")
	if out != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", out)
	}
}

func TestRender_Empty(t *testing.T) {
	if got := Render(80, "  \n\n"); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRender_FormatsList(t *testing.T) {
	got := Render(80, "# Rules\n\n- first item\n- second item\n")
	if !strings.Contains(got, "- first item") {
		t.Fatalf("expected list item, got %q", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Fatalf("expected trailing newlines trimmed, got %q", got)
	}
}
