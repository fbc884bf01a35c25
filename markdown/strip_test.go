package markdown

import (
	"strings"
	"testing"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"empty",
			"",
			"",
		},
		{
			"plain paragraph",
			"Just some text.",
			"Just some text.",
		},
		{
			"heading markers removed",
			"## Section Title\n\nBody text.",
			"Section Title\n\nBody text.",
		},
		{
			"inline markup removed",
			"Text with **bold** and *italic* and `code`.",
			"Text with bold and italic and code.",
		},
		{
			"list markers removed",
			"- first\n- second\n",
			"first\nsecond",
		},
		{
			"soft line break joins",
			"line one\nline two",
			"line one line two",
		},
		{
			"link text kept",
			"See [the docs](https://example.com) here.",
			"See the docs here.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strip(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStripRenderedDocument(t *testing.T) {
	rendered := "# Title\n\nFirst paragraph.\n\n- item one\n- item two\n\nLast paragraph.\n"
	got := Strip(rendered)

	for _, want := range []string{"Title", "First paragraph.", "item one", "item two", "Last paragraph."} {
		if !strings.Contains(got, want) {
			t.Errorf("stripped text missing %q: %q", want, got)
		}
	}
	if strings.ContainsAny(got, "#-") {
		t.Errorf("markup survived stripping: %q", got)
	}
}
