package generator

import "fmt"

const (
	maxLength    = 1024
	maxWordCount = 20
)

// ValidationResult reports whether a config can generate a password.
// Errors make the config unusable; warnings are advisory.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate checks cfg without generating anything.
func Validate(cfg Config) ValidationResult {
	var res ValidationResult

	if !knownType(cfg.Type) {
		res.Errors = append(res.Errors, fmt.Sprintf("unknown password type %q", cfg.Type))
		return res
	}

	switch cfg.Type {
	case TypeMemorable:
		count := cfg.WordCount
		if count == 0 {
			count = defaultWordCount
		}
		if count < 0 || count > maxWordCount {
			res.Errors = append(res.Errors, fmt.Sprintf("word count must be between 1 and %d, got %d", maxWordCount, cfg.WordCount))
		}
		if count == 1 {
			res.Warnings = append(res.Warnings, "a single word is easy to guess")
		}

	default:
		if cfg.Length < 1 || cfg.Length > maxLength {
			res.Errors = append(res.Errors, fmt.Sprintf("length must be between 1 and %d, got %d", maxLength, cfg.Length))
		}
		if cfg.Type == TypeRandom && buildCharset(cfg) == "" {
			res.Errors = append(res.Errors, "no character classes selected")
		}

		if cfg.Type == TypeRandom && cfg.Length > 0 && cfg.Length < 8 {
			res.Warnings = append(res.Warnings, "length below 8 is weak for random passwords")
		}
		if cfg.Type == TypeRandom && singleClass(cfg) {
			res.Warnings = append(res.Warnings, "only one character class selected")
		}
		if cfg.Type == TypePIN && cfg.Length > 0 && cfg.Length < 6 {
			res.Warnings = append(res.Warnings, "PINs shorter than 6 digits are weak")
		}
	}

	res.Valid = len(res.Errors) == 0
	return res
}

func singleClass(cfg Config) bool {
	classes := 0
	for _, on := range []bool{cfg.IncludeLowercase, cfg.IncludeUppercase, cfg.IncludeNumbers, cfg.IncludeSymbols} {
		if on {
			classes++
		}
	}
	return classes == 1
}
