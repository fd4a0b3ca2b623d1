package notes

import "strings"

// The extraction scanners are independent single passes over the raw file
// text. Each returns matches in document order so downstream merging stays
// deterministic.

// scanWikilinks returns the trimmed inner text of every [[...]] occurrence.
func scanWikilinks(s string) []string {
	var links []string
	for i := 0; i+1 < len(s); {
		if s[i] != '[' || s[i+1] != '[' {
			i++
			continue
		}
		end := strings.Index(s[i+2:], "]]")
		if end < 0 {
			break
		}
		inner := strings.TrimSpace(s[i+2 : i+2+end])
		if inner != "" && !strings.ContainsAny(inner, "[]") {
			links = append(links, inner)
		}
		i += 2 + end + 2
	}
	return links
}

func isTagByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' || b == '_' || b == '-'
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' || b == '_'
}

// scanTags returns every #tag token whose # sits on a word boundary. Tag
// identity is case-sensitive; the leading # is not part of the tag text.
func scanTags(s string) []string {
	var tags []string
	for i := 0; i < len(s); i++ {
		if s[i] != '#' {
			continue
		}
		if i > 0 && isWordByte(s[i-1]) {
			continue
		}
		j := i + 1
		for j < len(s) && isTagByte(s[j]) {
			j++
		}
		// Require an alphanumeric start so heading markers and rules
		// like #--- never scan as tags.
		if j > i+1 && isWordByte(s[i+1]) {
			tags = append(tags, s[i+1:j])
		}
		i = j - 1
	}
	return tags
}

// scanHeaders returns the text of every level-2 heading.
func scanHeaders(s string) []string {
	var headers []string
	for _, line := range strings.Split(s, "\n") {
		if !strings.HasPrefix(line, "## ") {
			continue
		}
		text := strings.TrimSpace(line[3:])
		if text != "" {
			headers = append(headers, text)
		}
	}
	return headers
}

// scanRefTargets collects raw reference strings: markdown link targets
// [text](target) and bare angle-bracket targets <target>. Scheme-qualified
// URLs are filtered at resolution time, not here.
func scanRefTargets(s string) []string {
	var refs []string

	for i := 0; i+1 < len(s); i++ {
		if s[i] != ']' || s[i+1] != '(' {
			continue
		}
		end := strings.IndexByte(s[i+2:], ')')
		if end < 0 {
			break
		}
		target := strings.TrimSpace(s[i+2 : i+2+end])
		// A title suffix ("...") is not part of the target.
		if cut := strings.IndexByte(target, ' '); cut >= 0 {
			target = target[:cut]
		}
		if target != "" {
			refs = append(refs, target)
		}
		i += 1 + end + 1
	}

	for i := 0; i < len(s); i++ {
		if s[i] != '<' {
			continue
		}
		end := strings.IndexByte(s[i+1:], '>')
		if end < 0 {
			break
		}
		target := s[i+1 : i+1+end]
		if target != "" && !strings.ContainsAny(target, " \t\n<") {
			refs = append(refs, target)
		}
		i += end + 1
	}

	return refs
}
