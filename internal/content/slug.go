// Package content addresses, stores and loads question packs. A pack is
// a CSV file identified by a slug like "math/grade1/20l".
package content

import (
	"regexp"
	"strings"

	"study-game/internal/domain"
)

var (
	slugRe       = regexp.MustCompile(`^[a-z0-9/_-]+$`)
	gradeRe      = regexp.MustCompile(`(?:grade|g)\s*(\d+)`)
	wordStartRe  = regexp.MustCompile(`\b\w`)
	dashRunRe    = regexp.MustCompile(`[-_]+`)
	slashRunRe   = regexp.MustCompile(`/+`)
	colonRunRe   = regexp.MustCompile(`:+`)
)

// NormalizeSlug canonicalizes a pack slug: lowercase, "/" separators,
// no duplicate or surrounding slashes. Colons show up in slugs from old
// uploads and are treated as separators.
func NormalizeSlug(raw string) string {
	s := strings.ReplaceAll(raw, `\`, "/")
	s = colonRunRe.ReplaceAllString(s, "/")
	s = slashRunRe.ReplaceAllString(s, "/")
	s = strings.Trim(s, "/")
	return strings.ToLower(s)
}

// ValidateSlug normalizes and validates a slug for storage addressing.
// Path traversal and non-ASCII slugs are rejected.
func ValidateSlug(raw string) (string, error) {
	s := NormalizeSlug(strings.TrimSpace(raw))
	if s == "" || strings.Contains(s, "..") || !slugRe.MatchString(s) {
		return "", domain.NewInvalidSlugError(raw)
	}
	return s, nil
}

// ParseSubjectGrade extracts the subject code and grade number from a
// slug: "math/grade1/20m" -> ("math", 1). Grade 0 means not present.
func ParseSubjectGrade(slug string) (string, int) {
	s := strings.ToLower(strings.TrimSpace(slug))
	subject := ""
	if parts := strings.Split(s, "/"); len(parts) > 0 {
		subject = parts[0]
	}
	grade := 0
	if m := gradeRe.FindStringSubmatch(s); m != nil {
		grade = atoiSafe(m[1])
	}
	return subject, grade
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// curatedTitles overrides derived pack titles for known packs.
var curatedTitles = map[string]string{
	"chinese/grade1/mixed-colored-demo":    "小一｜中文｜顏色混合示例",
	"chinese/grade1/mixed-chi3-demofixed":  "小一｜中文｜混合題（chi3）",
	"math/grade1/20l":                      "小一｜數學｜1–20（容易）",
	"math/grade1/20m":                      "小一｜數學｜1–20（中等）",
	"math/grade1/20h":                      "小一｜數學｜1–20（困難）",
}

// PrettyTitle derives a readable title from the slug's last segment.
func PrettyTitle(slug string) string {
	parts := strings.Split(NormalizeSlug(slug), "/")
	last := ""
	if len(parts) > 0 {
		last = parts[len(parts)-1]
	}
	last = dashRunRe.ReplaceAllString(last, " ")
	return wordStartRe.ReplaceAllStringFunc(last, strings.ToUpper)
}

// TitleFor picks the display title for a pack: a title carried in the
// CSV wins, then the curated map, then the prettified slug tail.
func TitleFor(slug, csvTitle string) string {
	if t := strings.TrimSpace(csvTitle); t != "" {
		return t
	}
	if t, ok := curatedTitles[NormalizeSlug(slug)]; ok {
		return t
	}
	return PrettyTitle(slug)
}

// PackInfo describes one listed pack.
type PackInfo struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Grade   string `json:"grade"`
}

// curatedOrder pins the display position of known packs; everything
// else sorts after them by subject, grade, then slug.
var curatedOrder = map[string]int{
	"chinese/grade1/mixed-colored-demo":   0,
	"chinese/grade1/mixed-chi3-demofixed": 1,
	"math/grade1/20l":                     2,
	"math/grade1/20m":                     3,
	"math/grade1/20h":                     4,
}

var subjectOrder = map[string]int{"chinese": 0, "math": 1}

func packRank(p PackInfo) (int, int, int, string) {
	custom, ok := curatedOrder[p.Slug]
	if !ok {
		custom = 9999
	}
	subj, ok := subjectOrder[p.Subject]
	if !ok {
		subj = 999
	}
	_, grade := ParseSubjectGrade(p.Slug)
	if grade == 0 {
		grade = 999
	}
	return custom, subj, grade, p.Slug
}

// lessPack orders packs for listing.
func lessPack(a, b PackInfo) bool {
	ac, as, ag, aslug := packRank(a)
	bc, bs, bg, bslug := packRank(b)
	if ac != bc {
		return ac < bc
	}
	if as != bs {
		return as < bs
	}
	if ag != bg {
		return ag < bg
	}
	return aslug < bslug
}
