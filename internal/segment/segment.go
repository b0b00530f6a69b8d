// Package segment packs changelog lines into chat messages that respect a
// per-message character limit.
//
// The packer is greedy and order-preserving: lines are accumulated into the
// current message until the next line would overflow the limit, at which point
// the current message is flushed and a new one starts. A single line longer
// than the limit is emitted as its own oversized message rather than being
// split mid-line; the caller decides whether that is acceptable.
package segment

import (
	"strings"
	"unicode/utf8"
)

// Length measures a message the way the limit is defined: in characters
// (runes), not bytes. Markup and emoji count per code point.
func Length(s string) int { return utf8.RuneCountInString(s) }

// Split joins header, body, and footer lines into newline-separated messages
// of at most limit characters each.
//
// The header always opens the first message. Each body line is atomic and is
// appended to the current message while it still fits. The footer is merged
// into the last message when it fits, otherwise it becomes a trailing message
// of its own. Messages that end up empty or whitespace-only are dropped.
//
// Split is pure: it never mutates its inputs and has no state between calls.
// It can return zero messages (everything empty or whitespace); the caller is
// expected to substitute a fallback message in that case.
func Split(header, body, footer []string, limit int) []string {
	var out []string
	current := append([]string(nil), header...)

	for _, line := range body {
		if joinedLen(current, line) <= limit {
			current = append(current, line)
			continue
		}
		if len(current) > 0 {
			out = append(out, strings.Join(current, "\n"))
		}
		// The line starts the next message even if it alone exceeds the
		// limit; single lines are never split.
		current = []string{line}
	}

	if len(footer) > 0 {
		merged := strings.Join(concat(current, footer), "\n")
		if Length(merged) <= limit {
			out = append(out, merged)
		} else {
			if len(current) > 0 {
				out = append(out, strings.Join(current, "\n"))
			}
			out = append(out, strings.Join(footer, "\n"))
		}
	} else if len(current) > 0 {
		out = append(out, strings.Join(current, "\n"))
	}

	kept := out[:0]
	for _, m := range out {
		if strings.TrimSpace(m) != "" {
			kept = append(kept, m)
		}
	}
	return kept
}

// joinedLen is Length(strings.Join(append(lines, next), "\n")) without
// building the candidate string.
func joinedLen(lines []string, next string) int {
	n := Length(next)
	for _, l := range lines {
		n += Length(l) + 1
	}
	return n
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
