package richtext_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/edupath/internal/app/system/richtext"
)

func TestRender_Empty(t *testing.T) {
	got, err := richtext.Render("   ")
	if err != nil || got != "" {
		t.Errorf("Render(blank) = %q, %v", got, err)
	}
}

func TestRender_Markdown(t *testing.T) {
	got, err := richtext.Render("## Visa checklist\n\n- passport\n- **offer letter**\n")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<h2", "Visa checklist", "<li>passport</li>", "<strong>offer letter</strong>"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered HTML missing %q: %s", want, got)
		}
	}
}

func TestRender_GFMTable(t *testing.T) {
	got, err := richtext.Render("| Country | Fee |\n|---|---|\n| Canada | $150 |\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<td>Canada</td>") {
		t.Errorf("expected table, got %s", got)
	}
}

func TestRender_DropsScripts(t *testing.T) {
	got, err := richtext.Render("Hello <script>alert('x')</script>\n\n[click](javascript:alert(1))")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<script") || strings.Contains(got, "javascript:") {
		t.Errorf("unsafe content survived: %s", got)
	}
	if !strings.Contains(got, "Hello") {
		t.Errorf("safe content lost: %s", got)
	}
}

func TestRender_ExternalLinksNoFollow(t *testing.T) {
	got, err := richtext.Render("[apply](https://example.com/apply)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `rel="nofollow`) || !strings.Contains(got, `href="https://example.com/apply"`) {
		t.Errorf("link = %s", got)
	}
}

func TestSanitize(t *testing.T) {
	in := `<p>Content</p><iframe src="https://evil.com"></iframe>`
	got := richtext.Sanitize(in)
	if strings.Contains(got, "iframe") || !strings.Contains(got, "Content") {
		t.Errorf("Sanitize = %q", got)
	}
	if richtext.Sanitize("") != "" {
		t.Error("Sanitize(empty) should be empty")
	}
}

func TestPlainText(t *testing.T) {
	if got := richtext.PlainText("  <b>Study</b> abroad "); got != "Study abroad" {
		t.Errorf("PlainText = %q", got)
	}
	if !richtext.IsPlainText("Hello, World!") || richtext.IsPlainText("<p>x</p>") {
		t.Error("IsPlainText wrong")
	}
}
