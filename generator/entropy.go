package generator

import (
	"fmt"
	"math"

	"github.com/passforge/passforge/internal/wordlist"
)

// Strength bands, by entropy bits.
const (
	StrengthVeryWeak   = "very-weak"
	StrengthWeak       = "weak"
	StrengthReasonable = "reasonable"
	StrengthStrong     = "strong"
	StrengthVeryStrong = "very-strong"
)

// guessesPerSecond models an offline attacker with modern hardware, used
// only for the human-readable crack-time display.
const guessesPerSecond = 1e10

// EntropyReport summarizes the theoretical strength of passwords a config
// produces.
type EntropyReport struct {
	Bits             float64
	PoolSize         int
	Length           int
	Strength         string
	CrackTimeDisplay string
}

// Entropy computes the entropy report for cfg. The config must be valid.
func Entropy(cfg Config) (EntropyReport, error) {
	if res := Validate(cfg); !res.Valid {
		return EntropyReport{}, fmt.Errorf("invalid config: %s", res.Errors[0])
	}

	var bits float64
	var poolSize, length int

	switch cfg.Type {
	case TypeMemorable:
		length = cfg.WordCount
		if length <= 0 {
			length = defaultWordCount
		}
		poolSize = wordlist.Len()
		bits = float64(length) * math.Log2(float64(poolSize))
		if cfg.Capitalize {
			// One casing bit per word.
			bits += float64(length)
		}
		if cfg.IncludeNumber {
			bits += math.Log2(100)
		}

	case TypeBase64:
		length = cfg.Length
		poolSize = 64
		bits = float64(length) * 6

	case TypePIN:
		length = cfg.Length
		poolSize = len(digitChars)
		bits = float64(length) * math.Log2(float64(poolSize))

	default: // TypeRandom
		length = cfg.Length
		poolSize = len(buildCharset(cfg))
		bits = float64(length) * math.Log2(float64(poolSize))
	}

	return EntropyReport{
		Bits:             bits,
		PoolSize:         poolSize,
		Length:           length,
		Strength:         strengthFor(bits),
		CrackTimeDisplay: crackTimeDisplay(bits),
	}, nil
}

func strengthFor(bits float64) string {
	switch {
	case bits < 28:
		return StrengthVeryWeak
	case bits < 36:
		return StrengthWeak
	case bits < 60:
		return StrengthReasonable
	case bits < 128:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}

// crackTimeDisplay renders the expected time to exhaust half the keyspace.
func crackTimeDisplay(bits float64) string {
	seconds := math.Pow(2, bits-1) / guessesPerSecond

	switch {
	case seconds < 1:
		return "instant"
	case seconds < 60:
		return fmt.Sprintf("%.0f seconds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.0f minutes", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%.0f hours", seconds/3600)
	case seconds < 86400*365:
		return fmt.Sprintf("%.0f days", seconds/86400)
	case seconds < 86400*365*1000:
		return fmt.Sprintf("%.0f years", seconds/(86400*365))
	default:
		return "centuries"
	}
}
