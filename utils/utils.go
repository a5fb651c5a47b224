package utils

import (
	rndm "math/rand"
	"path/filepath"
	"regexp"
	"strings"
)

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")
var digitRunes = []rune("0123456789")

// GenerateID creates a random alphanumeric identifier of length n.
func GenerateID(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateDigitString creates a random numeric string of length n.
func GenerateDigitString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = digitRunes[rndm.Intn(len(digitRunes))]
	}
	return string(b)
}

// NormalizeCity lowercases and trims a city filter to match stored casing.
func NormalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// SanitizeFilename strips anything outside [\w.-] from a file's base name.
func SanitizeFilename(name string) string {
	re := regexp.MustCompile(`[^\w.\-]`)
	clean := re.ReplaceAllString(filepath.Base(name), "_")
	if clean == "" {
		return "file"
	}
	return clean
}
