package detect

import (
	"path/filepath"
	"strings"
	"unicode"
)

const (
	featureSampleSize = 2000
	pickSampleSize    = 1000
	featureStride     = 7919
)

var featureVocabulary = []string{
	"red patches", "scaling", "blisters", "rash", "bumps",
	"discoloration", "itchy appearance", "swelling", "lesions",
	"pustules", "nodules", "ulcers", "crusting", "erosions",
	"macules", "papules", "vesicles", "wheals", "purpura",
	"petechiae", "telangiectasia", "atrophy", "lichenification",
}

var bodyLocations = []string{"face", "arms", "legs", "trunk", "scalp", "hands", "feet", "neck"}

// contentHash is the 32-bit `h*31 + b` rolling hash over the first n bytes.
func contentHash(data []byte, n int) int32 {
	if len(data) < n {
		n = len(data)
	}
	var h int32
	for _, b := range data[:n] {
		h = (h << 5) - h + int32(b)
	}
	return h
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// ExtractFeatures synthesizes pseudo-visual labels from the content hash: three to
// five vocabulary words and one body location. The same bytes always produce the
// same labels.
func ExtractFeatures(data []byte) []string {
	h := int64(contentHash(data, featureSampleSize))
	n := 3 + int(abs64(h)%3)

	features := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		idx := abs64(h+int64(i)*featureStride) % int64(len(featureVocabulary))
		features = append(features, featureVocabulary[idx])
	}
	loc := bodyLocations[abs64(h)%int64(len(bodyLocations))]
	return append(features, "located on "+loc)
}

// filenameStem lowercases the base name and drops the extension.
func filenameStem(name string) string {
	base := strings.ToLower(filepath.Base(strings.TrimSpace(name)))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FilenameFeatures turns "Red_Rash-arm.jpg" into ["red rash arm", "red", "rash", "arm"].
func FilenameFeatures(name string) []string {
	words := strings.FieldsFunc(filenameStem(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return nil
	}
	out := make([]string, 0, len(words)+1)
	if len(words) > 1 {
		out = append(out, strings.Join(words, " "))
	}
	return append(out, words...)
}
