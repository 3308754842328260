// Package encoding implements the escaped-digit run-length transform.
//
// The encoder replaces every maximal run of identical bytes with one token: the
// escaped symbol followed by the decimal run length. Tokens are concatenated with
// no delimiter, so the grammar relies on symbols never being bare digits.
//
// # Token Grammar
//
//	token   = symbol count
//	symbol  = literal | escape
//	literal = any byte except '\n', '0'-'9' and '\'
//	escape  = '\' marker
//	count   = 1*20 DIGIT          ; decimal, >= 1
//
// Escape markers resolve as follows:
//
//	\n   -> newline (0x0A)
//	\t   -> tab (0x09)
//	\0-9 -> the literal digit
//	\x   -> backslash, for any other marker x
//
// The encoder emits \n for newlines, \<digit> for digits and \\ for backslashes;
// tabs and every other byte are written as-is. The decoder additionally accepts
// \t so streams produced by other tools stay readable.
//
// # Examples
//
//	"aaabbbccc" -> "a3b3c3"
//	"555"       -> "\53"
//	"\n\n"      -> "\n2"
//	"x"         -> "x1"
//
// # Buffer Management
//
// Both directions write into a pool.ByteBuffer that starts at one chunk (or a
// caller supplied size hint), grows in whole chunks and is trimmed once to its
// exact length before it is returned. The returned slice is owned by the caller
// and always satisfies cap == len. A transform that fails returns no partial
// output.
//
// The transform performs no logging and holds no shared state; encoders and
// decoders are safe for concurrent use once configured.
package encoding
