package export

import (
	"regexp"
	"strings"
)

// mentionRegex captures an @-mention token: an "@" not preceded by a word
// character, followed by 5-32 handle characters. RE2 has no lookbehind, so
// the leading guard consumes the preceding non-word character (or anchors at
// the start of input); adjacent runs cannot overlap because a consumed handle
// always ends in a word character. Word characters are Unicode letters and
// digits plus underscore, so "привет@abcde" carries no mention while
// "привет @abcde" does.
var mentionRegex = regexp.MustCompile(`(^|[^\p{L}\p{N}_])@([A-Za-z0-9_]{5,32})`)

// ScanMentions returns the set of lowercase mention tokens found in text.
// It never fails; empty input yields an empty set. The scan is a single
// linear pass.
func ScanMentions(text string) map[string]bool {
	mentions := make(map[string]bool)
	for _, m := range mentionRegex.FindAllStringSubmatch(text, -1) {
		mentions[strings.ToLower(m[2])] = true
	}
	return mentions
}
