// Package markup handles the lightweight BBCode-style tags embedded in
// question text: [c=name]..[/c] color spans, [b], [i], [u] and [br].
//
// Two distinct rendering contracts exist and must not be mixed up:
// ToHTML escapes the input and interprets tags into styled HTML for
// on-screen or HTML-email display; Strip removes tags and returns plain
// text for contexts like plain-text report rows.
package markup

import (
	"html"
	"regexp"
	"strings"
)

var (
	colorOpenRe  = regexp.MustCompile(`(?i)\[c=([a-z0-9_-]+)\]`)
	colorCloseRe = regexp.MustCompile(`(?i)\[/c\]`)
	styleOpenRe  = regexp.MustCompile(`(?i)\[(b|i|u)\]`)
	styleCloseRe = regexp.MustCompile(`(?i)\[/(b|i|u)\]`)
	brRe         = regexp.MustCompile(`(?i)\[br\]`)
	newlineRe    = regexp.MustCompile(`\r?\n`)

	// escaped forms, matched after html escaping in ToHTML
	escColorOpenRe = regexp.MustCompile(`(?i)\[c=([a-z0-9_-]+)\]`)
)

var styleTags = map[string]string{
	"b": "strong",
	"i": "em",
	"u": "u",
}

// ToHTML escapes src and converts its tags into HTML. Escaping happens
// first so arbitrary HTML in content never reaches the output.
func ToHTML(src string) string {
	s := html.EscapeString(src)

	s = escColorOpenRe.ReplaceAllString(s, `<span style="color:var(--c-$1)">`)
	s = colorCloseRe.ReplaceAllString(s, "</span>")
	s = styleOpenRe.ReplaceAllStringFunc(s, func(m string) string {
		tag := styleTags[strings.ToLower(m[1:len(m)-1])]
		return "<" + tag + ">"
	})
	s = styleCloseRe.ReplaceAllStringFunc(s, func(m string) string {
		tag := styleTags[strings.ToLower(m[2:len(m)-1])]
		return "</" + tag + ">"
	})
	s = brRe.ReplaceAllString(s, "<br>")
	s = newlineRe.ReplaceAllString(s, "<br>")

	return s
}

// Strip removes all markup tags and flattens newlines to spaces,
// returning plain text suitable for emails and logs.
func Strip(src string) string {
	s := colorOpenRe.ReplaceAllString(src, "")
	s = colorCloseRe.ReplaceAllString(s, "")
	s = styleOpenRe.ReplaceAllString(s, "")
	s = styleCloseRe.ReplaceAllString(s, "")
	s = brRe.ReplaceAllString(s, "")
	s = newlineRe.ReplaceAllString(s, " ")
	return s
}
