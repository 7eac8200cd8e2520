// Package generator implements the password generation algorithms the task
// pool executes: character sampling, base64 windowing, and word-list
// selection, plus config validation and entropy scoring.
//
// Everything in this package is pure, stateless, and sequential; all
// concurrency lives in the pool package.
package generator

// Password types. The set is fixed at compile time.
const (
	TypeRandom    = "random"
	TypeBase64    = "base64"
	TypeMemorable = "memorable"
	TypePIN       = "pin"
)

// Config describes one password to generate. Character-class fields apply
// to "random"; word fields apply to "memorable"; Length applies to every
// type except "memorable".
type Config struct {
	Type   string `yaml:"type"`
	Length int    `yaml:"length"`

	IncludeUppercase bool `yaml:"include_uppercase"`
	IncludeLowercase bool `yaml:"include_lowercase"`
	IncludeNumbers   bool `yaml:"include_numbers"`
	IncludeSymbols   bool `yaml:"include_symbols"`
	ExcludeAmbiguous bool `yaml:"exclude_ambiguous"`

	WordCount     int    `yaml:"word_count"`
	Separator     string `yaml:"separator"`
	Capitalize    bool   `yaml:"capitalize"`
	IncludeNumber bool   `yaml:"include_number"`
}

// Default returns the default generation config: a 16-character random
// password with upper, lower, and numeric characters.
func Default() Config {
	return Config{
		Type:             TypeRandom,
		Length:           16,
		IncludeUppercase: true,
		IncludeLowercase: true,
		IncludeNumbers:   true,
	}
}

// Types returns the supported password types.
func Types() []string {
	return []string{TypeRandom, TypeBase64, TypeMemorable, TypePIN}
}

func knownType(t string) bool {
	for _, k := range Types() {
		if t == k {
			return true
		}
	}
	return false
}
