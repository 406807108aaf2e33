package styles

import (
	"bytes"
	"encoding/xml"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultFontSize is the pixel size used when a size cannot be parsed.
	DefaultFontSize = 14.0
	// Ellipsis is appended to fitted text.
	Ellipsis = "..."

	charWidthFactor = 0.6
	remBase         = 16.0
)

// ParseFontSize converts a CSS-like size ("14px", "1rem", "0.9em", "12")
// to pixels. Invalid or non-positive input yields DefaultFontSize.
func ParseFontSize(size string) float64 { return ParseLength(size, DefaultFontSize) }

// ParseLength converts a CSS-like length to pixels. Like CSS parsers it
// reads the leading number and ignores unknown units; rem and em resolve
// against a fixed 16px base. Invalid or non-positive input yields def.
func ParseLength(size string, def float64) float64 {
	s := strings.TrimSpace(strings.ToLower(size))
	v, err := strconv.ParseFloat(leadingNumber.FindString(s), 64)
	if err != nil || !(v > 0) || math.IsInf(v, 0) {
		return def
	}
	if strings.HasSuffix(s, "em") {
		return v * remBase
	}
	return v
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)(e[+-]?\d+)?`)

// ApproxTextWidth estimates the rendered width of text in pixels. It is a
// monospace-like approximation, not glyph metrics.
func ApproxTextWidth(text string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(text)) * fontSize * charWidthFactor
}

// FitWithEllipsis truncates text so its approximate width fits maxWidth,
// appending Ellipsis when anything was cut. When not even one character
// and the ellipsis fit, the ellipsis alone is returned.
func FitWithEllipsis(text string, maxWidth, fontSize float64) string {
	if text == "" {
		return text
	}
	if !(fontSize > 0) {
		fontSize = DefaultFontSize
	}
	if maxWidth <= 0 {
		return Ellipsis
	}
	if ApproxTextWidth(text, fontSize) <= maxWidth {
		return text
	}
	room := maxWidth - ApproxTextWidth(Ellipsis, fontSize)
	if room <= 0 {
		return Ellipsis
	}
	n := int(room / (fontSize * charWidthFactor))
	for n > 0 && ApproxTextWidth(Ellipsis, fontSize)+float64(n)*fontSize*charWidthFactor > maxWidth {
		n--
	}
	if n <= 0 {
		return Ellipsis
	}
	runes := []rune(text)
	if n > len(runes) {
		n = len(runes)
	}
	return strings.TrimRight(string(runes[:n]), " \t") + Ellipsis
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
