// Package markdown converts generated news reports into HTML fragments.
//
// The default renderer understands exactly the subset the report generator
// produces: headings (levels 1-3), unordered list items, bold spans, links,
// and blank-line paragraph breaks. Anything else passes through as literal
// text.
package markdown

import (
	"regexp"
	"strings"
)

// DefaultBannerTitle is the heading the news generator writes at the top of
// every report.
const DefaultBannerTitle = "AI News Weekly Report"

// Precompiled patterns, in the order they are applied.
var (
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	h1Line = regexp.MustCompile(`(?m)^# (.*)$`)
	h2Line = regexp.MustCompile(`(?m)^## (.*)$`)
	h3Line = regexp.MustCompile(`(?m)^### (.*)$`)

	listLine = regexp.MustCompile(`(?m)^- (.*)$`)

	// A run of <li> lines separated only by single newlines.
	listRun = regexp.MustCompile(`(?m)^<li>.*</li>(?:\n<li>.*</li>)*$`)

	boldSpan = regexp.MustCompile(`(?s)\*\*(.*?)\*\*`)
	linkSpan = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

	defaultBanner = bannerPattern(DefaultBannerTitle)
)

// Options tunes the subset transformer.
type Options struct {
	// BannerTitle is the title of the metadata banner stripped from the top
	// of a report. Empty means DefaultBannerTitle.
	BannerTitle string
}

// Transform converts report markdown into an HTML fragment using the default
// banner title. It is deterministic and never fails.
func Transform(markdown string) string {
	return transform(markdown, defaultBanner)
}

// Transform converts report markdown into an HTML fragment, stripping the
// banner titled o.BannerTitle.
func (o Options) Transform(markdown string) string {
	return transform(markdown, o.banner())
}

func (o Options) banner() *regexp.Regexp {
	if o.BannerTitle == "" || o.BannerTitle == DefaultBannerTitle {
		return defaultBanner
	}
	return bannerPattern(o.BannerTitle)
}

func transform(content string, banner *regexp.Regexp) string {
	content = normalizeLineEndings(content)
	content = stripBanner(content, banner)
	content = convertHeadings(content)
	content = convertListItems(content)
	content = groupListItems(content)
	content = convertBold(content)
	content = convertLinks(content)
	return wrapParagraphs(content)
}

// bannerPattern matches a line starting with "# <title>" through the first
// "---" line and at most one blank line after it.
func bannerPattern(title string) *regexp.Regexp {
	return regexp.MustCompile(`(?ms)^# ` + regexp.QuoteMeta(title) + `.*?^---$\n?\n?`)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// stripBanner removes the first banner block. Content without a complete
// banner is returned unchanged.
func stripBanner(content string, banner *regexp.Regexp) string {
	loc := banner.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[0]] + content[loc[1]:]
}

// convertHeadings turns "#", "##" and "###" lines into h1-h3 elements.
func convertHeadings(content string) string {
	content = h1Line.ReplaceAllString(content, "<h1>$1</h1>")
	content = h2Line.ReplaceAllString(content, "<h2>$1</h2>")
	return h3Line.ReplaceAllString(content, "<h3>$1</h3>")
}

// convertListItems turns "- item" lines into li elements.
func convertListItems(content string) string {
	return listLine.ReplaceAllString(content, "<li>$1</li>")
}

// groupListItems wraps each run of adjacent li lines in a single ul.
func groupListItems(content string) string {
	return listRun.ReplaceAllStringFunc(content, func(run string) string {
		return "<ul>" + run + "</ul>"
	})
}

// convertBold transforms **text** to <strong>text</strong>.
func convertBold(content string) string {
	return boldSpan.ReplaceAllString(content, "<strong>$1</strong>")
}

// convertLinks transforms [label](url) to an anchor.
func convertLinks(content string) string {
	return linkSpan.ReplaceAllString(content, `<a href="$2">$1</a>`)
}

// wrapParagraphs splits blank-line separated blocks into paragraphs and
// lifts lists out of any enclosing paragraph.
func wrapParagraphs(content string) string {
	content = "<p>" + strings.ReplaceAll(content, "\n\n", "</p><p>") + "</p>"
	content = strings.ReplaceAll(content, "<p><ul>", "<ul>")
	return strings.ReplaceAll(content, "</ul></p>", "</ul>")
}
