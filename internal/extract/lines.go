package extract

import "strings"

// splitLines splits document text into trimmed lines. With dropEmpty set,
// blank lines are removed (the tax invoice layout); the ledger layout keeps
// them so that label/value line adjacency survives.
func splitLines(text string, dropEmpty bool) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if dropEmpty && l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// lineAfter scans forward for the first line matching match and returns the
// line immediately after it. Both source layouts place values on the line
// following their label, so extractors express "label on line N, value on
// line N+1" through this single cursor.
func lineAfter(lines []string, match func(string) bool) (string, bool) {
	for i, l := range lines {
		if match(l) {
			if i+1 < len(lines) {
				return lines[i+1], true
			}
			return "", false
		}
	}
	return "", false
}
