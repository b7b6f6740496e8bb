package pdftext

import (
	"regexp"
	"strings"
)

var (
	// a lone vertical bar between letters is almost always an "l"
	barAsL = regexp.MustCompile(`(\p{L})\|(\p{L})`)
	// "12l50", "12I50", "12|50" are decimal points the whitelist or
	// font mangled
	decimalMisread = regexp.MustCompile(`(\d)[lI|](\d{2})\b`)
	// letter O next to digits is a zero
	oAsZero        = regexp.MustCompile(`(\d)[Oo](\d)`)
	oAsZeroDecimal = regexp.MustCompile(`(\d)[Oo]([.,]\d)`)
	// zero between letters is an O
	zeroAsO = regexp.MustCompile(`(\p{L})0(\p{L})`)
)

// CorrectOCRText fixes the misrecognitions tesseract makes most often
// on menus: vertical bars standing in for "l", O/0 confusion, and
// digit-letter-digit patterns that are really decimal prices.
func CorrectOCRText(text string) string {
	text = decimalMisread.ReplaceAllString(text, "$1.$2")
	text = barAsL.ReplaceAllString(text, "${1}l${2}")
	text = oAsZero.ReplaceAllString(text, "${1}0${2}")
	text = oAsZeroDecimal.ReplaceAllString(text, "${1}0${2}")
	text = zeroAsO.ReplaceAllString(text, "${1}O${2}")
	// stray bars that survived the contextual pass carry no signal
	text = strings.ReplaceAll(text, "|", "l")
	return text
}
