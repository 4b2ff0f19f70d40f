package citations

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/citelens/citations-bot/internal/models"
	"github.com/sirupsen/logrus"
)

// rawMatch is a candidate span emitted by the matcher before context,
// scoring and deduplication are applied.
type rawMatch struct {
	start       int
	end         int
	text        string
	mentionType models.MentionType
}

// findMentions scans text for one alias across every pattern family, in
// family order. If no rhetorical template matches, a bare case-insensitive
// search captures every literal occurrence as a direct mention so nothing
// is silently dropped.
func (e *Extractor) findMentions(text, alias string) []rawMatch {
	var matches []rawMatch
	quoted := regexp.QuoteMeta(alias)

	for _, family := range e.lexicon.Patterns {
		for _, template := range family.Templates {
			re, err := regexp.Compile(`(?i)` + fmt.Sprintf(template, quoted))
			if err != nil {
				logrus.Debugf("Skipping unparseable pattern for alias %q: %v", alias, err)
				continue
			}
			for _, loc := range re.FindAllStringIndex(text, -1) {
				matches = append(matches, rawMatch{
					start:       loc[0],
					end:         loc[1],
					text:        text[loc[0]:loc[1]],
					mentionType: family.Type,
				})
			}
		}
	}

	if len(matches) == 0 {
		matches = exactMatches(text, alias)
	}

	return matches
}

// exactMatches is the completeness fallback: every literal occurrence of
// the alias, matched case-insensitively.
func exactMatches(text, alias string) []rawMatch {
	if alias == "" {
		return nil
	}

	var matches []rawMatch
	lowerText := strings.ToLower(text)
	lowerAlias := strings.ToLower(alias)

	offset := 0
	for {
		idx := strings.Index(lowerText[offset:], lowerAlias)
		if idx < 0 {
			break
		}
		start := offset + idx
		end := start + len(alias)
		matches = append(matches, rawMatch{
			start:       start,
			end:         end,
			text:        text[start:end],
			mentionType: models.MentionDirect,
		})
		offset = end
	}

	return matches
}

// isFullWordMatch reports whether the span is not embedded in a larger
// alphanumeric token.
func isFullWordMatch(text string, start, end int) bool {
	if start > 0 && isAlnum(text[start-1]) {
		return false
	}
	if end < len(text) && isAlnum(text[end]) {
		return false
	}
	return true
}

func isAlnum(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
