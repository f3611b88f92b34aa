package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTruncateLength is the summary length used by listing views.
const DefaultTruncateLength = 150

var (
	scriptBlock  = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	iframeBlock  = regexp.MustCompile(`(?is)<iframe\b.*?</iframe>`)
	jsScheme     = regexp.MustCompile(`(?i)javascript:`)
	eventHandler = regexp.MustCompile(`(?i)on\w+\s*=`)
	anyTag       = regexp.MustCompile(`<[^>]*>`)

	entityDecoder = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// Sanitize removes script and iframe blocks, javascript: schemes and inline
// event handler attributes from job description HTML.
//
// This is a best-effort denylist for display of feed content. It is NOT a
// security boundary: untrusted input that ends up in a browser must go
// through an allowlist sanitizer instead.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}

	out := scriptBlock.ReplaceAllString(html, "")
	out = iframeBlock.ReplaceAllString(out, "")
	out = jsScheme.ReplaceAllString(out, "")
	out = eventHandler.ReplaceAllString(out, "")

	return strings.TrimSpace(out)
}

// StripTags removes all markup and decodes &nbsp; &amp; &lt; &gt; &quot; and
// &#39;. Markup that only appears after decoding is removed as well, so
// StripTags(StripTags(x)) == StripTags(x).
func StripTags(html string) string {
	if html == "" {
		return ""
	}

	out := html
	for {
		next := anyTag.ReplaceAllString(entityDecoder.Replace(out), "")
		if next == out {
			break
		}
		out = next
	}

	return strings.TrimSpace(out)
}

// Truncate strips markup from text and cuts it to maxLength characters,
// appending "..." when something was cut.
func Truncate(text string, maxLength int) string {
	if text == "" {
		return ""
	}
	if maxLength < 0 {
		maxLength = 0
	}

	stripped := StripTags(text)
	if utf8.RuneCountInString(stripped) <= maxLength {
		return stripped
	}

	runes := []rune(stripped)
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}

// Highlights returns the text of every list item in a description, in
// document order. Job descriptions put requirements and responsibilities in
// <li> elements; the detail view shows them as bullets.
func Highlights(html string) []string {
	if strings.TrimSpace(html) == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var items []string
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text != "" {
			items = append(items, text)
		}
	})
	return items
}
