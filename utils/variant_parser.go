package utils

import "strings"

// Known size tokens in the order Printify tends to list them.
var knownSizes = map[string]bool{
	"XS":   true,
	"S":    true,
	"M":    true,
	"L":    true,
	"XL":   true,
	"2XL":  true,
	"XXL":  true,
	"3XL":  true,
	"XXXL": true,
	"OS":   true, // one size
}

// NormalizeSize normalizes a size token to its canonical uppercase form.
// "XXL" and "2XL" are the same size; same for "XXXL"/"3XL".
func NormalizeSize(size string) string {
	sizeUpper := strings.ToUpper(strings.TrimSpace(size))

	if sizeUpper == "XXL" {
		return "2XL"
	}
	if sizeUpper == "XXXL" {
		return "3XL"
	}
	if sizeUpper == "ONE SIZE" || sizeUpper == "ONESIZE" {
		return "OS"
	}

	return sizeUpper
}

// ParseVariantTitle splits a Printify variant title like "S / Navy" or
// "Black / XL" into a (size, color) pair. Either part may be absent:
// "One Size" yields ("OS", ""), "Navy" yields ("", "Navy").
func ParseVariantTitle(title string) (size string, color string) {
	parts := strings.Split(title, "/")

	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}

		normalized := NormalizeSize(token)
		if knownSizes[normalized] {
			if size == "" {
				size = normalized
			}
			continue
		}

		if color == "" {
			color = token
		}
	}

	return size, color
}
