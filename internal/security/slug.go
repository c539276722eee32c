// Package security generates the unguessable identifiers exposed in public
// profile links.
package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"unicode"
)

// SlugAlphabet avoids characters that are easy to misread when a link is
// copied by hand.
const SlugAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

const (
	slugSuffixLength = 8
	slugStemMaxRunes = 24
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the
// requested length drawn from alphabet.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}
	return string(value), nil
}

// NewPublicSlug builds "<stem>-<random>" from a display name, e.g.
// "maya-k2x9q7ab". The stem is only a readability hint; the random suffix is
// what makes the slug unguessable.
func NewPublicSlug(displayName string) (string, error) {
	suffix, err := RandomString(slugSuffixLength, SlugAlphabet)
	if err != nil {
		return "", err
	}
	stem := SlugStem(displayName)
	if stem == "" {
		return suffix, nil
	}
	return stem + "-" + suffix, nil
}

// SlugStem lowercases name and keeps ASCII letters and digits, joining the
// remaining words with single dashes.
func SlugStem(name string) string {
	var builder strings.Builder
	pendingDash := false
	runes := 0
	for _, char := range strings.ToLower(name) {
		if runes >= slugStemMaxRunes {
			break
		}
		isWordChar := char < unicode.MaxASCII && (unicode.IsLetter(char) || unicode.IsDigit(char))
		if !isWordChar {
			pendingDash = builder.Len() > 0
			continue
		}
		if pendingDash {
			builder.WriteByte('-')
			runes++
			pendingDash = false
		}
		builder.WriteRune(char)
		runes++
	}
	return strings.TrimSuffix(builder.String(), "-")
}
