package analysis

import (
	"strings"

	"llm-stock-advisor/internal/types"
)

type section int

const (
	sectionNone section = iota - 1
	sectionTechnical
	sectionNews
	sectionSummary
)

// labels are matched in this order; index equals the section value.
var labels = []string{"technical reasoning", "news-based reasoning", "summary"}

// Parse splits a model response into the three labelled sections.
//
// A label is accepted only when it comes after the last accepted one, so a
// repeated or out-of-order label stays as text of the current section. Text
// before the first label is dropped. When no label is found the trimmed
// response becomes the summary.
func Parse(response string) types.Analysis {
	current := sectionNone
	var bodies [3][]string

	for _, line := range strings.Split(response, "\n") {
		if s, rest, ok := matchLabel(line); ok && s > current {
			current = s
			if rest != "" {
				bodies[s] = append(bodies[s], rest)
			}
			continue
		}
		if current != sectionNone {
			bodies[current] = append(bodies[current], line)
		}
	}

	if current == sectionNone {
		out := types.EmptyAnalysis()
		if trimmed := strings.TrimSpace(response); trimmed != "" {
			out.Summary = trimmed
		}
		return out
	}

	text := func(s section) string {
		t := strings.TrimSpace(strings.Join(bodies[s], "\n"))
		if t == "" {
			return types.NA
		}
		return t
	}
	return types.Analysis{
		TechnicalReason: text(sectionTechnical),
		NewsReason:      text(sectionNews),
		Summary:         text(sectionSummary),
	}
}

// matchLabel recognises a label at the start of line. Markdown decoration
// such as "## ", "**" or "2. " around the label is ignored. rest is the text
// following the colon on the same line.
func matchLabel(line string) (section, string, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "#*_>- \t")
	s = trimListNumber(s)
	s = strings.TrimLeft(s, "*_ ")

	lower := strings.ToLower(s)
	for i, label := range labels {
		if !strings.HasPrefix(lower, label) {
			continue
		}
		after := strings.TrimLeft(s[len(label):], "*_ ")
		if !strings.HasPrefix(after, ":") {
			return sectionNone, "", false
		}
		rest := strings.TrimLeft(after[1:], "*_")
		return section(i), strings.TrimSpace(rest), true
	}
	return sectionNone, "", false
}

// trimListNumber drops a leading "1." or "2)" list marker.
func trimListNumber(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || (s[i] != '.' && s[i] != ')') {
		return s
	}
	return strings.TrimSpace(s[i+1:])
}

// Join renders an analysis back in the labelled format Parse reads.
func Join(a types.Analysis) string {
	return "Technical Reasoning:\n" + a.TechnicalReason +
		"\nNews-Based Reasoning:\n" + a.NewsReason +
		"\nSummary:\n" + a.Summary
}
