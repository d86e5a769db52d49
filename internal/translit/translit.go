// Package translit maps Unicode text to lower-case ASCII suitable for file
// names.
//
// Letters and digits of the Latin blocks map to their base letter, with
// common German and Nordic conventions (ä to ae, ß to ss, þ to th) and a few
// currency and typographic symbols spelled out. Everything else becomes an
// underscore.
package translit

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Unmapped replaces code points without a transliteration.
const Unmapped = "_"

// decomposeLimit bounds the code points resolved by canonical decomposition.
// Above it only the explicit table applies.
const decomposeLimit = 0x2000

// special lists the code points whose transliteration differs from their
// decomposed base letter, or that have no decomposition at all.
var special = map[rune]string{
	'$': "usd",

	'¢': "ct", '£': "gbp", '¥': "jpy", '©': "c", 'ª': "a", '®': "r",
	'²': "2", '³': "3", 'µ': "mu", '¹': "1", 'º': "o", 'Ä': "ae",
	'Æ': "ae", 'Ð': "dh", 'Ö': "oe", 'Ø': "oe", 'Ü': "ue", 'Þ': "th",
	'ß': "ss", 'ä': "ae", 'æ': "ae", 'ð': "dh", 'ö': "oe", 'ø': "oe",
	'ü': "ue", 'þ': "th",

	'Đ': "d", 'đ': "d", 'Ħ': "h", 'ħ': "h", 'ı': "i", 'Ĳ': "ij",
	'ĳ': "ij", 'ĸ': "k", 'Ŀ': "l", 'ŀ': "l", 'Ł': "l", 'ł': "l",
	'ŉ': "n", 'Ŋ': "ng", 'ŋ': "ng", 'Ő': "oe", 'ő': "oe", 'Œ': "oe",
	'œ': "oe", 'Ŧ': "t", 'ŧ': "t", 'Ű': "ue", 'ű': "ue", 'ſ': "s",
	'ƀ': "b", 'Ɓ': "b", 'Ƃ': "b", 'ƃ': "b", 'Ƅ': "h", 'ƅ': "h",
	'Ɔ': "o", 'Ƈ': "c", 'ƈ': "c", 'Ɖ': "d", 'Ɗ': "d", 'Ƌ': "d",
	'ƌ': "d", 'ƍ': "s", 'Ǝ': "e", 'Ə': "e", 'Ɛ': "e", 'Ƒ': "f",
	'ƒ': "f", 'Ɠ': "g", 'Ɣ': "g", 'ƕ': "hv", 'Ɩ': "i", 'Ɨ': "i",
	'Ƙ': "k", 'ƙ': "k", 'ƚ': "l", 'ƛ': "l", 'Ɯ': "m", 'Ɲ': "n",
	'ƞ': "n", 'Ɵ': "o", 'Ƣ': "g", 'ƣ': "g", 'Ƥ': "p", 'ƥ': "p",
	'Ʀ': "r", 'Ƨ': "s", 'ƨ': "s", 'Ʃ': "s", 'ƪ': "t", 'ƫ': "t",
	'Ƭ': "t", 'ƭ': "t", 'Ʈ': "t", 'Ʊ': "u", 'Ʋ': "v", 'Ƴ': "y",
	'ƴ': "y", 'Ƶ': "z", 'ƶ': "z", 'Ʒ': "z", 'Ƹ': "z", 'ƹ': "z",
	'ƺ': "z", 'ƻ': "z", 'Ƽ': "q", 'ƽ': "q", 'ƿ': "w", 'Ǆ': "dz",
	'ǅ': "dz", 'ǆ': "dz", 'Ǉ': "lj", 'ǈ': "lj", 'ǉ': "lj", 'Ǌ': "nj",
	'ǋ': "nj", 'ǌ': "nj", 'Ǖ': "ue", 'ǖ': "ue", 'Ǘ': "ue", 'ǘ': "ue",
	'Ǚ': "ue", 'ǚ': "ue", 'Ǜ': "ue", 'ǜ': "ue", 'ǝ': "e", 'Ǟ': "ae",
	'ǟ': "ae", 'Ǡ': "ae", 'ǡ': "ae", 'Ǣ': "ae", 'ǣ': "ae", 'Ǥ': "g",
	'ǥ': "g", 'Ǯ': "z", 'ǯ': "z", 'Ǳ': "dz", 'ǲ': "dz", 'ǳ': "dz",
	'Ƕ': "hv", 'Ƿ': "w", 'Ǽ': "ae", 'ǽ': "ae", 'Ǿ': "oe", 'ǿ': "oe",


	'Ȁ': "ae", 'ȁ': "ae", 'Ȍ': "oe", 'ȍ': "oe", 'Ȕ': "ue", 'ȕ': "ue",
	'Ȝ': "g", 'ȝ': "g", 'Ƞ': "n", 'ȡ': "d", 'Ȣ': "ou", 'ȣ': "ou",
	'Ȥ': "z", 'ȥ': "z", 'Ȫ': "oe", 'ȫ': "oe", 'ȴ': "l", 'ȵ': "n",
	'ȶ': "t", 'ȷ': "j", 'ȸ': "db", 'ȹ': "qp", 'Ⱥ': "a", 'Ȼ': "c",
	'ȼ': "c", 'Ƚ': "l", 'Ⱦ': "t", 'ȿ': "s", 'ɀ': "z", 'Ƀ': "b",
	'Ʉ': "u", 'Ʌ': "v", 'Ɇ': "e", 'ɇ': "e", 'Ɉ': "j", 'ɉ': "j",
	'Ɋ': "q", 'ɋ': "q", 'Ɍ': "r", 'ɍ': "r", 'Ɏ': "y", 'ɏ': "y",


	'Ṏ': "oe", 'ṏ': "oe", 'Ṻ': "ue", 'ṻ': "ue", 'ẚ': "a", 'ẛ': "s",
	'ẜ': "s", 'ẝ': "s", 'ẞ': "ss", 'ẟ': "d", 'Ỻ': "li", 'ỻ': "li",
	'Ỽ': "v", 'ỽ': "v", 'Ỿ': "y", 'ỿ': "y",

	'€': "eur",

	'Ⱡ': "l", 'ⱡ': "i", 'Ɫ': "l", 'Ᵽ': "p", 'Ɽ': "r", 'ⱥ': "a",
	'ⱦ': "t", 'Ⱨ': "h", 'ⱨ': "h", 'Ⱪ': "k", 'ⱪ': "k", 'Ⱬ': "z",
	'ⱬ': "z", 'Ɑ': "a", 'Ɱ': "m", 'Ɐ': "a", 'Ɒ': "a", 'ⱱ': "v",
	'Ⱳ': "w", 'ⱳ': "w", 'ⱴ': "v", 'Ⱶ': "h", 'ⱶ': "h", 'ⱷ': "ph",
	'ⱸ': "e", 'ⱹ': "r", 'ⱺ': "o", 'ⱻ': "e", 'ⱼ': "j", 'ⱽ': "v",
	'Ȿ': "s", 'Ɀ': "z",

	'Ꜧ': "h", 'ꜧ': "h", 'Ꜩ': "tz", 'ꜩ': "tz", 'ꜰ': "f", 'ꜱ': "s",
	'Ꜳ': "aa", 'ꜳ': "aa", 'Ꜵ': "ao", 'ꜵ': "ao", 'Ꜷ': "au", 'ꜷ': "au",
	'Ꜹ': "av", 'ꜹ': "av", 'Ꜻ': "av", 'ꜻ': "av", 'Ꜽ': "ay", 'ꜽ': "ay",
	'Ꜿ': "c", 'ꜿ': "c", 'Ꝁ': "k", 'ꝁ': "k", 'Ꝃ': "k", 'ꝃ': "k",
	'Ꝅ': "k", 'ꝅ': "k", 'Ꝇ': "l", 'ꝇ': "l", 'Ꝉ': "l", 'ꝉ': "l",
	'Ꝋ': "o", 'ꝋ': "o", 'Ꝍ': "o", 'ꝍ': "o", 'Ꝏ': "oo", 'ꝏ': "oo",
	'Ꝑ': "p", 'ꝑ': "p", 'Ꝓ': "p", 'ꝓ': "p", 'Ꝕ': "p", 'ꝕ': "p",
	'Ꝗ': "q", 'ꝗ': "q", 'Ꝙ': "q", 'ꝙ': "q", 'Ꝛ': "r", 'ꝛ': "r",
	'Ꝟ': "v", 'ꝟ': "v", 'Ꝡ': "vy", 'ꝡ': "vy", 'Ꝣ': "z", 'ꝣ': "z",
	'Ꝥ': "th", 'ꝥ': "th", 'Ꝧ': "th", 'ꝧ': "th", 'Ꝩ': "v", 'ꝩ': "v",
	'Ꝯ': "9", 'ꝯ': "9", 'ꝰ': "9", 'ꝱ': "d", 'ꝲ': "l", 'ꝳ': "m",
	'ꝴ': "n", 'ꝵ': "r", 'ꝶ': "r", 'ꝷ': "t", 'Ꝺ': "d", 'ꝺ': "d",
	'Ꝼ': "f", 'ꝼ': "f", 'Ᵹ': "g", 'Ꝿ': "g", 'ꝿ': "g", 'Ꞁ': "l",
	'ꞁ': "l", 'Ꞃ': "r", 'ꞃ': "r", 'Ꞅ': "s", 'ꞅ': "s", 'Ꞇ': "t",
	'ꞇ': "t", 'Ɥ': "h", 'ꞎ': "l", 'Ꞑ': "n", 'ꞑ': "n", 'Ꞓ': "c",
	'Ꞡ': "g", 'ꞡ': "g", 'Ꞣ': "k", 'ꞣ': "k", 'Ꞥ': "n", 'ꞥ': "n",
	'Ꞧ': "r", 'ꞧ': "r", 'Ꞩ': "s", 'ꞩ': "s", 'Ɦ': "h", 'ꟸ': "h",
	'ꟹ': "oe", 'ꟺ': "m", 'ꟻ': "f", 'ꟼ': "p", 'ꟽ': "m", 'ꟾ': "i",
	'ꟿ': "m",
}

func newStripper() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func isASCIIAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Rune returns the transliteration of r, or "" if r has none.
func Rune(r rune) string {
	return token(r, nil)
}

func token(r rune, strip transform.Transformer) string {
	if isASCIIAlnum(r) {
		return string(unicode.ToLower(r))
	}
	if t, ok := special[r]; ok {
		return t
	}
	if r < 0x80 || r >= decomposeLimit || r == unicode.ReplacementChar {
		return ""
	}

	if strip == nil {
		strip = newStripper()
	}
	base, _, err := transform.String(strip, string(r))
	if err != nil {
		return ""
	}
	if b := []rune(base); len(b) == 1 && isASCIIAlnum(b[0]) {
		return string(unicode.ToLower(b[0]))
	}
	return ""
}

// String transliterates every code point of s, writing Unmapped for those
// without a mapping. Invalid UTF-8 bytes count as unmapped.
func String(s string) string {
	strip := newStripper()

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if t := token(r, strip); t != "" {
			b.WriteString(t)
		} else {
			b.WriteString(Unmapped)
		}
	}
	return b.String()
}
