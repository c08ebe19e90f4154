// Package naming generates the short binding names used by exported programs.
//
// Names are a fixed Prefix followed by the index written as a positional
// numeral over a 63-symbol alphabet. Every symbol is legal inside an
// identifier, the numeral has no leading zeros, and smaller indices never get
// longer names than larger ones.
package naming

// Alphabet holds the numeral symbols in digit order.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_"

// Base is the radix of the numeral.
const Base = len(Alphabet)

// Prefix starts every generated name. The letter also occurs in Alphabet,
// which is harmless: every name carries exactly one leading Prefix, so two
// names are equal only when their suffixes are, and no name starts with a
// digit. The helper binding and the literal names (null, true, nan, ...)
// never start with Prefix.
const Prefix = "o"

// maxDigits is enough for any non-negative int64: 63^11 > 2^63.
const maxDigits = 11

// Suffix returns the numeral for index without the prefix.
func Suffix(index int) string {
	if index < 0 {
		panic("naming: negative index")
	}

	var buf [maxDigits]byte

	pos := len(buf)
	for {
		pos--
		buf[pos] = Alphabet[index%Base]

		index /= Base
		if index == 0 {
			break
		}
	}

	return string(buf[pos:])
}

// Name returns the binding name for index.
func Name(index int) string {
	return Prefix + Suffix(index)
}
