package markdown

import (
	"strings"
	"testing"
)

func TestTransform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "<p></p>",
		},
		{
			name:     "h1",
			input:    "# Title",
			expected: "<p><h1>Title</h1></p>",
		},
		{
			name:     "h2",
			input:    "## Research Breakthroughs",
			expected: "<p><h2>Research Breakthroughs</h2></p>",
		},
		{
			name:     "h3",
			input:    "### Deep Dive",
			expected: "<p><h3>Deep Dive</h3></p>",
		},
		{
			name:     "h4 is not in the subset",
			input:    "#### Four",
			expected: "<p>#### Four</p>",
		},
		{
			name:     "hash without space is literal",
			input:    "#hashtag",
			expected: "<p>#hashtag</p>",
		},
		{
			name:     "inline hash untouched",
			input:    "C# is #1",
			expected: "<p>C# is #1</p>",
		},
		{
			name:     "adjacent list items share one ul",
			input:    "- A\n- B\n- C",
			expected: "<ul><li>A</li>\n<li>B</li>\n<li>C</li></ul>",
		},
		{
			name:     "blank line splits list groups",
			input:    "- A\n\n- B",
			expected: "<ul><li>A</li></ul><ul><li>B</li></ul>",
		},
		{
			name:     "heading wins over list on the same line",
			input:    "## - item",
			expected: "<p><h2>- item</h2></p>",
		},
		{
			name:     "bold",
			input:    "a **bold** word",
			expected: "<p>a <strong>bold</strong> word</p>",
		},
		{
			name:     "bold is non-greedy",
			input:    "**a** and **b**",
			expected: "<p><strong>a</strong> and <strong>b</strong></p>",
		},
		{
			name:     "bold across newline",
			input:    "**a\nb**",
			expected: "<p><strong>a\nb</strong></p>",
		},
		{
			name:     "unmatched bold passes through",
			input:    "**open",
			expected: "<p>**open</p>",
		},
		{
			name:     "link",
			input:    "see [Go](https://go.dev)",
			expected: `<p>see <a href="https://go.dev">Go</a></p>`,
		},
		{
			name:     "unmatched link passes through",
			input:    "[broken](https://go.dev",
			expected: "<p>[broken](https://go.dev</p>",
		},
		{
			name:     "bold inside link label",
			input:    "[**Go**](https://go.dev)",
			expected: `<p><a href="https://go.dev"><strong>Go</strong></a></p>`,
		},
		{
			name:     "paragraphs",
			input:    "one\n\ntwo",
			expected: "<p>one</p><p>two</p>",
		},
		{
			name:     "list between paragraphs is not nested in p",
			input:    "intro\n\n- A\n- B\n\noutro",
			expected: "<p>intro</p><ul><li>A</li>\n<li>B</li></ul><p>outro</p>",
		},
		{
			name:     "CRLF line endings",
			input:    "## A\r\n\r\nText",
			expected: "<p><h2>A</h2></p><p>Text</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Transform(tt.input)
			if got != tt.expected {
				t.Errorf("Transform() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTransform_StripsBanner(t *testing.T) {
	t.Parallel()

	input := "# AI News Weekly Report\n\n*Generated on 2026-10-16 09:00:00*\n\n---\n\n## Major Releases"

	got := Transform(input)
	if strings.Contains(got, "AI News Weekly Report") {
		t.Fatalf("banner title leaked into output: %q", got)
	}
	if got != "<p><h2>Major Releases</h2></p>" {
		t.Fatalf("Transform() = %q, want output starting at the Major Releases heading", got)
	}
}

func TestTransform_BannerWithoutSeparatorIsNoOp(t *testing.T) {
	t.Parallel()

	input := "# AI News Weekly Report\n\nBody"

	got := Transform(input)
	want := "<p><h1>AI News Weekly Report</h1></p><p>Body</p>"
	if got != want {
		t.Fatalf("Transform() = %q, want %q", got, want)
	}
}

func TestTransform_BannerEndsAtFirstSeparator(t *testing.T) {
	t.Parallel()

	input := "# AI News Weekly Report\n\n---\n## Major Releases\n\nBig news.\n\n---\n\n## Other"

	got := Transform(input)
	if !strings.HasPrefix(got, "<p><h2>Major Releases</h2></p><p>Big news.</p>") {
		t.Fatalf("content after the first separator was lost: %q", got)
	}
	if !strings.Contains(got, "<h2>Other</h2>") {
		t.Fatalf("later sections should be kept: %q", got)
	}
}

func TestTransform_OnlyFirstBannerStripped(t *testing.T) {
	t.Parallel()

	banner := "# AI News Weekly Report\n\nmeta\n\n---\n\n"
	got := Transform(banner + "## A\n\n" + banner + "## B")

	if !strings.Contains(got, "<h1>AI News Weekly Report</h1>") {
		t.Fatalf("second banner should be kept as content: %q", got)
	}
	if !strings.HasPrefix(got, "<p><h2>A</h2></p>") {
		t.Fatalf("first banner should be stripped: %q", got)
	}
}

func TestOptions_CustomBannerTitle(t *testing.T) {
	t.Parallel()

	opts := Options{BannerTitle: "Robotics Digest (Weekly)"}
	input := "# Robotics Digest (Weekly)\n\nmeta\n\n---\n\n## Arms"

	if got := opts.Transform(input); got != "<p><h2>Arms</h2></p>" {
		t.Fatalf("Transform() = %q", got)
	}

	// The default title is no longer treated as a banner.
	if got := opts.Transform("# AI News Weekly Report\n\nx\n\n---\n\ny"); !strings.Contains(got, "<h1>AI News Weekly Report</h1>") {
		t.Fatalf("default banner should not be stripped with a custom title: %q", got)
	}
}

func TestTransform_Deterministic(t *testing.T) {
	t.Parallel()

	input := "# AI News Weekly Report\n\n*meta*\n\n---\n\n## Major Releases\n\n- **Model X** by [Lab](https://lab.example)\n- Model Y\n\nClosing words."

	first := Transform(input)
	for i := 0; i < 10; i++ {
		if got := Transform(input); got != first {
			t.Fatalf("run %d differs:\n got  %q\n want %q", i, got, first)
		}
	}
}

func TestTransform_FullReport(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"# AI News Weekly Report",
		"",
		"*Generated on 2026-10-16 09:00:00*",
		"*Covering the period from 2026-10-09 to 2026-10-16*",
		"",
		"---",
		"",
		"## 1. Major AI Model Releases",
		"",
		"### Frontier Labs",
		"",
		"- **Model X** shipped with longer context",
		"- Benchmarks published at [the blog](https://example.com/blog)",
		"",
		"Impact is expected to be significant.",
	}, "\n")

	got := Transform(input)

	for _, want := range []string{
		"<h2>1. Major AI Model Releases</h2>",
		"<h3>Frontier Labs</h3>",
		"<ul><li><strong>Model X</strong> shipped with longer context</li>\n<li>Benchmarks published at <a href=\"https://example.com/blog\">the blog</a></li></ul>",
		"<p>Impact is expected to be significant.</p>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\ngot: %q", want, got)
		}
	}
	if strings.Contains(got, "Generated on") {
		t.Errorf("banner metadata leaked: %q", got)
	}
	if n := strings.Count(got, "<ul>"); n != 1 {
		t.Errorf("expected exactly 1 <ul>, got %d", n)
	}
	if strings.Contains(got, "<p><ul>") || strings.Contains(got, "</ul></p>") {
		t.Errorf("list nested inside paragraph: %q", got)
	}
}
