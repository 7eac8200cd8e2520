package generator

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"

	"github.com/passforge/passforge/internal/wordlist"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	symbolChars    = "!@#$%^&*()-_=+[]{};:,.<>?"
	ambiguousChars = "Il1O0o"

	defaultWordCount = 4
	defaultSeparator = "-"
)

// Generate produces one password for the given config. The config should be
// validated first; Generate returns an error for configs that cannot
// produce output (unknown type, empty charset, non-positive length).
func Generate(cfg Config) (string, error) {
	switch cfg.Type {
	case TypeRandom:
		return generateRandom(cfg)
	case TypeBase64:
		return generateBase64(cfg)
	case TypeMemorable:
		return generateMemorable(cfg)
	case TypePIN:
		return generatePIN(cfg)
	default:
		return "", fmt.Errorf("unknown password type %q", cfg.Type)
	}
}

// generateRandom samples Length characters uniformly from the charset the
// config's character classes assemble.
func generateRandom(cfg Config) (string, error) {
	charset := buildCharset(cfg)
	if charset == "" {
		return "", fmt.Errorf("no character classes selected")
	}
	if cfg.Length <= 0 {
		return "", fmt.Errorf("length must be positive, got %d", cfg.Length)
	}

	var b strings.Builder
	b.Grow(cfg.Length)
	for j := 0; j < cfg.Length; j++ {
		i, err := randIndex(len(charset))
		if err != nil {
			return "", err
		}
		b.WriteByte(charset[i])
	}
	return b.String(), nil
}

// generateBase64 encodes random bytes and cuts a window of the requested
// length at a random offset.
func generateBase64(cfg Config) (string, error) {
	if cfg.Length <= 0 {
		return "", fmt.Errorf("length must be positive, got %d", cfg.Length)
	}

	// Enough raw bytes that the encoding is comfortably longer than the
	// requested window.
	raw := make([]byte, (cfg.Length*3)/4+8)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	encoded := base64.RawStdEncoding.EncodeToString(raw)
	offset, err := randIndex(len(encoded) - cfg.Length + 1)
	if err != nil {
		return "", err
	}
	return encoded[offset : offset+cfg.Length], nil
}

// generateMemorable joins randomly selected dictionary words, optionally
// capitalized, with an optional two-digit suffix.
func generateMemorable(cfg Config) (string, error) {
	count := cfg.WordCount
	if count <= 0 {
		count = defaultWordCount
	}
	sep := cfg.Separator
	if sep == "" {
		sep = defaultSeparator
	}

	words := make([]string, 0, count)
	for j := 0; j < count; j++ {
		i, err := randIndex(wordlist.Len())
		if err != nil {
			return "", err
		}
		w := wordlist.Word(i)
		if cfg.Capitalize {
			w = strings.ToUpper(w[:1]) + w[1:]
		}
		words = append(words, w)
	}

	out := strings.Join(words, sep)
	if cfg.IncludeNumber {
		n, err := randIndex(100)
		if err != nil {
			return "", err
		}
		out = fmt.Sprintf("%s%s%02d", out, sep, n)
	}
	return out, nil
}

func generatePIN(cfg Config) (string, error) {
	if cfg.Length <= 0 {
		return "", fmt.Errorf("length must be positive, got %d", cfg.Length)
	}

	var b strings.Builder
	b.Grow(cfg.Length)
	for j := 0; j < cfg.Length; j++ {
		i, err := randIndex(len(digitChars))
		if err != nil {
			return "", err
		}
		b.WriteByte(digitChars[i])
	}
	return b.String(), nil
}

// buildCharset assembles the sampling alphabet from the config's character
// classes, removing ambiguous characters if asked.
func buildCharset(cfg Config) string {
	var b strings.Builder
	if cfg.IncludeLowercase {
		b.WriteString(lowercaseChars)
	}
	if cfg.IncludeUppercase {
		b.WriteString(uppercaseChars)
	}
	if cfg.IncludeNumbers {
		b.WriteString(digitChars)
	}
	if cfg.IncludeSymbols {
		b.WriteString(symbolChars)
	}

	charset := b.String()
	if cfg.ExcludeAmbiguous {
		charset = strings.Map(func(r rune) rune {
			if strings.ContainsRune(ambiguousChars, r) {
				return -1
			}
			return r
		}, charset)
	}
	return charset
}

// randIndex returns a uniform random index in [0, n) from crypto/rand.
func randIndex(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("randIndex: non-positive bound %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random index: %w", err)
	}
	return int(v.Int64()), nil
}
