// Package textwrap word-wraps paragraphs the way ChangeLog tooling has
// traditionally done it: tabs are expanded, every whitespace character counts
// as a single space, words longer than the line are split, hyphenated words
// may break after the hyphen, and whitespace is dropped at line boundaries.
//
// Widths are measured in runes.
package textwrap

import (
	"strings"
	"unicode"
)

// tabSize is the tab stop used when expanding tabs before wrapping.
const tabSize = 8

// Wrap splits text into lines no longer than width. Leading whitespace of the
// first line is kept; whitespace at the start of any later line and at the
// end of every line is dropped. Empty or all-whitespace input yields no lines.
// A width below 1 is treated as 1.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	chunks := split(normalize(text))
	var lines []string

	for len(chunks) > 0 {
		var cur []string
		curLen := 0

		if isSpace(chunks[0]) && len(lines) > 0 {
			chunks = chunks[1:]
		}

		for len(chunks) > 0 {
			n := runeLen(chunks[0])
			if curLen+n > width {
				break
			}
			cur = append(cur, chunks[0])
			curLen += n
			chunks = chunks[1:]
		}

		if len(chunks) > 0 && runeLen(chunks[0]) > width {
			cur, chunks = breakLongWord(cur, chunks, width-curLen)
		}

		if len(cur) > 0 && isSpace(cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
		}

		if len(cur) > 0 {
			lines = append(lines, strings.Join(cur, ""))
		}
	}

	return lines
}

// Fill wraps text and joins the lines with newlines.
func Fill(text string, width int) string {
	return strings.Join(Wrap(text, width), "\n")
}

// breakLongWord moves the first spaceLeft runes of the next chunk onto the
// current line, leaving the remainder as the next chunk.
func breakLongWord(cur, chunks []string, spaceLeft int) ([]string, []string) {
	word := []rune(chunks[0])
	if spaceLeft > len(word) {
		spaceLeft = len(word)
	}
	cur = append(cur, string(word[:spaceLeft]))
	chunks[0] = string(word[spaceLeft:])
	return cur, chunks
}

// normalize expands tabs and turns every whitespace character into a space.
func normalize(text string) string {
	var sb strings.Builder
	col := 0
	for _, r := range text {
		switch r {
		case '\t':
			pad := tabSize - col%tabSize
			sb.WriteString(strings.Repeat(" ", pad))
			col += pad
		case '\n', '\r':
			sb.WriteRune(' ')
			col = 0
		case '\v', '\f':
			sb.WriteRune(' ')
			col++
		default:
			sb.WriteRune(r)
			col++
		}
	}
	return sb.String()
}

// split breaks normalized text into whitespace runs and words, splitting
// hyphenated words after each hyphen.
func split(text string) []string {
	var chunks []string
	runes := []rune(text)

	for i := 0; i < len(runes); {
		j := i
		if runes[i] == ' ' {
			for j < len(runes) && runes[j] == ' ' {
				j++
			}
			chunks = append(chunks, string(runes[i:j]))
		} else {
			for j < len(runes) && runes[j] != ' ' {
				j++
			}
			chunks = append(chunks, splitHyphens(runes[i:j])...)
		}
		i = j
	}

	return chunks
}

// splitHyphens splits a word after every hyphen that joins two alphabetic
// parts, e.g. "well-known" becomes "well-", "known". Numeric ranges such as
// "1-2" and leading or doubled hyphens are left intact.
func splitHyphens(word []rune) []string {
	var parts []string
	start := 0
	for i := 1; i < len(word)-1; i++ {
		if word[i] != '-' {
			continue
		}
		if hyphenBreakBefore(word[start:i]) && hyphenBreakAfter(word[i+1:]) {
			parts = append(parts, string(word[start:i+1]))
			start = i + 1
		}
	}
	return append(parts, string(word[start:]))
}

// hyphenBreakBefore reports whether the text before a hyphen ends with at
// least two word characters, the last one not a digit.
func hyphenBreakBefore(before []rune) bool {
	n := 0
	for k := len(before) - 1; k >= 0 && isWordRune(before[k]); k-- {
		n++
	}
	if n < 2 {
		return false
	}
	return !unicode.IsDigit(before[len(before)-1])
}

// hyphenBreakAfter reports whether the text after a hyphen starts with a run
// of at least two word characters containing a non-digit after the first.
func hyphenBreakAfter(after []rune) bool {
	n := 0
	for n < len(after) && isWordRune(after[n]) {
		n++
	}
	for k := 1; k < n; k++ {
		if !unicode.IsDigit(after[k]) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSpace(chunk string) bool {
	return strings.TrimSpace(chunk) == ""
}

func runeLen(s string) int {
	return len([]rune(s))
}
