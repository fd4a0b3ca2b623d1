package notes

import "strings"

// maxKeywords caps the keyword set per file (first-occurrence order) to
// bound the cost of pairwise similarity scoring downstream.
const maxKeywords = 4000

const minKeywordRunes = 4

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"about", "above", "after", "again", "also", "been", "before",
		"being", "below", "between", "both", "cannot", "could", "does",
		"doing", "down", "during", "each", "from", "further", "have",
		"having", "here", "into", "itself", "just", "like", "more",
		"most", "only", "other", "over", "same", "should", "some",
		"such", "than", "that", "their", "them", "then", "there",
		"these", "they", "this", "those", "through", "under", "until",
		"very", "were", "what", "when", "where", "which", "while",
		"will", "with", "would", "your",
	} {
		stopwords[w] = struct{}{}
	}
}

// extractKeywords produces the file's keyword list for similarity scoring:
// code, link syntax and bare URLs are stripped, the rest is lowercased and
// tokenized, and short or stopword tokens are dropped.
func extractKeywords(s string) []string {
	s = stripFencedCode(s)
	s = stripInlineCode(s)
	s = stripLinkSyntax(s)
	s = stripBareURLs(s)
	s = strings.ToLower(s)

	var keywords []string
	seen := make(map[string]struct{})
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		token := s[start:end]
		start = -1
		if len([]rune(token)) < minKeywordRunes {
			return
		}
		if _, stop := stopwords[token]; stop {
			return
		}
		if _, dup := seen[token]; dup {
			return
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
	}

	for i := 0; i < len(s) && len(keywords) < maxKeywords; i++ {
		if isTagByte(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	if len(keywords) < maxKeywords {
		flush(len(s))
	}

	return keywords
}

// stripFencedCode removes ``` fenced blocks, fence lines included.
func stripFencedCode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inFence := false
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// stripInlineCode removes `...` spans. An unclosed backtick is kept as text.
func stripInlineCode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '`' {
			b.WriteByte(s[i])
			continue
		}
		end := strings.IndexByte(s[i+1:], '`')
		if end < 0 {
			b.WriteString(s[i:])
			break
		}
		b.WriteByte(' ')
		i += end + 1
	}
	return b.String()
}

// stripLinkSyntax keeps the visible text of [text](target) and [[text]]
// markup while dropping the markup and targets.
func stripLinkSyntax(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '[' && i+1 < len(s) && s[i+1] == '[' {
			end := strings.Index(s[i+2:], "]]")
			if end >= 0 {
				b.WriteString(s[i+2 : i+2+end])
				i += 2 + end + 1
				continue
			}
		}
		if s[i] == '[' {
			closing := strings.IndexByte(s[i+1:], ']')
			if closing >= 0 {
				text := s[i+1 : i+1+closing]
				rest := i + 1 + closing + 1
				if rest < len(s) && s[rest] == '(' {
					paren := strings.IndexByte(s[rest+1:], ')')
					if paren >= 0 {
						b.WriteString(text)
						i = rest + 1 + paren
						continue
					}
				}
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// stripBareURLs drops whitespace-delimited tokens that start with a scheme.
func stripBareURLs(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
	drop := false
	for _, f := range fields {
		if isURLToken(f) {
			drop = true
			break
		}
	}
	if !drop {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, line := range strings.Split(s, "\n") {
		kept := []string{}
		for _, f := range strings.Fields(line) {
			if isURLToken(f) {
				continue
			}
			kept = append(kept, f)
		}
		b.WriteString(strings.Join(kept, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// isURLToken also matches autolinks like <https://example.com>.
func isURLToken(f string) bool {
	return strings.Contains(f, "http://") || strings.Contains(f, "https://")
}
