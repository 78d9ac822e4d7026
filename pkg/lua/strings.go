/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: strings.go
Description: Short string literals. The opening quote is remembered on the
stack so the other quote kind passes through as content. Escape sequences
are validated in full, including the decimal range check \0..\255 done as a
digit-by-digit decision tree and the bounded \u{...} code point.
*/

package lua

import (
	"github.com/kleascm/akaylee-oracle/pkg/compose"
)

func (g *gram) shortStrings() {
	g.one("short_string_start", '\'', wild, compose.Push("short_string", adv, "'"))
	g.one("short_string_start", '"', wild, compose.Push("short_string", adv, "\""))

	// Content: any byte except a raw newline or a backslash. The matching
	// close quote is resolved against the stack below.
	g.put("short_string", byteNot("\r\n\\"), wild, compose.To("short_string", adv))
	g.one("short_string", '"', "'", compose.To("short_string", adv))
	g.one("short_string", '\'', "\"", compose.To("short_string", adv))
	g.one("short_string", '\\', wild, compose.To("short_string_esc_seq", adv))

	// Single-byte escapes, including an escaped literal newline.
	g.put("short_string_esc_seq", compose.Bytes("abfnrtv\\\"'\n"), wild,
		compose.To("short_string", adv))

	// \z skips following whitespace, then string content resumes.
	g.one("short_string_esc_seq", 'z', wild, compose.To("short_string_esc_seq_z", adv))
	g.put("short_string_esc_seq_z", compose.Space, wild, compose.To("short_string_esc_seq_z", adv))
	g.put("short_string_esc_seq_z", compose.AnyByte.Without(compose.Space), wild, to("short_string"))

	// \xXX: exactly two hex digits.
	g.one("short_string_esc_seq", 'x', wild, compose.To("short_string_esc_seq_x", adv))
	g.put("short_string_esc_seq_x", compose.Hex, wild, compose.To("short_string_esc_seq_x_X", adv))
	g.put("short_string_esc_seq_x_X", compose.Hex, wild, compose.To("short_string", adv))

	// \d, \dd, \ddd with value at most 255, split on the first digit.
	notDigitByte := compose.AnyByte.Without(compose.Digit)

	// First digit 0 or 1: any two more digits fit.
	g.put("short_string_esc_seq", compose.Bytes("01"), wild,
		compose.To("short_string_esc_seq_01", adv))
	g.put("short_string_esc_seq_01", compose.Digit, wild,
		compose.To("short_string_esc_seq_01_*", adv))
	g.put("short_string_esc_seq_01_*", compose.Digit, wild,
		compose.To("short_string", adv))
	g.put("short_string_esc_seq_01", notDigitByte, wild, to("short_string"))
	g.put("short_string_esc_seq_01_*", notDigitByte, wild, to("short_string"))

	// First digit 3..9: at most one more digit.
	g.put("short_string_esc_seq", compose.Bytes("3456789"), wild,
		compose.To("short_string_esc_seq_3-9", adv))
	g.put("short_string_esc_seq_3-9", compose.Digit, wild,
		compose.To("short_string_esc_seq_3-9_*", adv))
	g.put("short_string_esc_seq_3-9", notDigitByte, wild, to("short_string"))
	g.put("short_string_esc_seq_3-9_*", notDigitByte, wild, to("short_string"))

	// First digit 2: the second digit decides whether a third may follow,
	// and 25x is only valid up to 255.
	g.one("short_string_esc_seq", '2', wild, compose.To("short_string_esc_seq_2", adv))
	g.put("short_string_esc_seq_2", compose.Bytes("01234"), wild,
		compose.To("short_string_esc_seq_2_0-4", adv))
	g.one("short_string_esc_seq_2", '5', wild, compose.To("short_string_esc_seq_2_5", adv))
	g.put("short_string_esc_seq_2", compose.Bytes("6789"), wild,
		compose.To("short_string_esc_seq_2_6-9", adv))
	g.put("short_string_esc_seq_2", notDigitByte, wild, to("short_string"))
	g.put("short_string_esc_seq_2_0-4", compose.Digit, wild, compose.To("short_string", adv))
	g.put("short_string_esc_seq_2_0-4", notDigitByte, wild, to("short_string"))
	g.put("short_string_esc_seq_2_5", compose.Bytes("012345"), wild,
		compose.To("short_string", adv))
	g.put("short_string_esc_seq_2_5", notDigitByte, wild, to("short_string"))
	g.put("short_string_esc_seq_2_6-9", notDigitByte, wild, to("short_string"))

	// \u{XXXXXXXX}: code point at most 0x7FFFFFFF, leading zeros allowed.
	g.one("short_string_esc_seq", 'u', wild, compose.To("short_string_esc_seq_u", adv))
	g.one("short_string_esc_seq_u", '{', wild, compose.To("short_string_esc_seq_u{", adv))
	g.one("short_string_esc_seq_u{", '0', wild, compose.To("short_string_esc_seq_u{_0", adv))
	g.one("short_string_esc_seq_u{_0", '0', wild, compose.To("short_string_esc_seq_u{_0", adv))
	// An all-zero code point closes directly.
	g.one("short_string_esc_seq_u{_0", '}', wild, compose.To("short_string", adv))
	for _, from := range []state{"short_string_esc_seq_u{", "short_string_esc_seq_u{_0"} {
		g.put(from, compose.Bytes("1234567"), wild,
			compose.To("short_string_esc_seq_u{_1-7", adv))
		g.put(from, compose.Bytes("89abcdefABCDEF"), wild,
			compose.To("short_string_esc_seq_u{_8-F", adv))
	}
	// After a leading 1-7 digit, up to seven more hex digits fit; after a
	// leading 8-F digit, only six more.
	prev := state("short_string_esc_seq_u{_1-7")
	for i := 1; i <= 7; i++ {
		next := state("short_string_esc_seq_u{_1-7_" + string(rune('0'+i)))
		g.put(prev, compose.Hex, wild, compose.To(next, adv))
		g.one(prev, '}', wild, compose.To("short_string", adv))
		prev = next
	}
	g.one(prev, '}', wild, compose.To("short_string", adv))
	prev = "short_string_esc_seq_u{_8-F"
	for i := 1; i <= 6; i++ {
		next := state("short_string_esc_seq_u{_8-F_" + string(rune('0'+i)))
		g.put(prev, compose.Hex, wild, compose.To(next, adv))
		g.one(prev, '}', wild, compose.To("short_string", adv))
		prev = next
	}
	g.one(prev, '}', wild, compose.To("short_string", adv))

	// Close quote pops back to the caller's exit.
	g.one("short_string", '\'', "'", compose.Pop("short_string_end", adv))
	g.one("short_string", '"', "\"", compose.Pop("short_string_end", adv))
}
