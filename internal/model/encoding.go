package model

// Character set names a header may declare.
const (
	EncodingANSEL   = "ANSEL"
	EncodingASCII   = "ASCII"
	EncodingUnicode = "UNICODE"
	EncodingUTF8    = "UTF-8"
)

// DefaultCharacterSetName is the character set assumed when none is declared.
const DefaultCharacterSetName = EncodingANSEL

var supportedCharacterSets = []string{
	EncodingANSEL,
	EncodingASCII,
	EncodingUnicode,
	EncodingUTF8,
}

// SupportedCharacterSetNames returns the character set names, in declaration order.
func SupportedCharacterSetNames() []string {
	out := make([]string, len(supportedCharacterSets))
	copy(out, supportedCharacterSets)
	return out
}

// IsSupportedCharacterSetName reports whether name is one of the supported
// character sets. The comparison is exact.
func IsSupportedCharacterSetName(name string) bool {
	for _, s := range supportedCharacterSets {
		if s == name {
			return true
		}
	}
	return false
}
