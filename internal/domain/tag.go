package domain

import (
	"regexp"
	"strings"
)

// Tag is a short mnemonic used by priority and misc tag lists, with its
// expanded description.
type Tag struct {
	Name string
	Info string
}

var rePriorityTag = regexp.MustCompile(`^(?:news[12]|ichi[12]|spec[12]|gai[12]|nf\d{2})$`)

// IsPriorityTag reports whether tag is a valid kanji or reading priority tag.
func IsPriorityTag(tag string) bool {
	return rePriorityTag.MatchString(tag)
}

// TagSeparator joins tag names in a stored tag list.
const TagSeparator = ","

// JoinTags encodes a tag list for storage. A nil or empty list yields "".
func JoinTags(tags []string) string {
	return strings.Join(tags, TagSeparator)
}

// SplitTags decodes a stored tag list, dropping empty items.
func SplitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, TagSeparator)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
