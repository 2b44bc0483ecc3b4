// Package detect is a demonstration skin-condition matcher. It does not look at the
// picture: labels are synthesized from a hash of the upload and matched against a
// fixed catalog, with filename heuristics as fallbacks. Results are deterministic
// and carry a disclaimer; they are not a diagnosis.
package detect

import (
	"sort"
	"strings"
)

// Disclaimer accompanies every result.
const Disclaimer = "Demonstration only: this result is produced by a deterministic heuristic, not a trained model, and is not a medical diagnosis."

type Method string

const (
	MethodVisualFeatures          Method = "visual-features"
	MethodFilenameFeatures        Method = "filename-features"
	MethodFilenameName            Method = "filename-name"
	MethodFilenameCharacteristics Method = "filename-characteristics"
	MethodContentHash             Method = "content-hash"
)

// Image is one uploaded file.
type Image struct {
	Name string
	Data []byte
}

type Result struct {
	Disease         Candidate `json:"disease"`
	Method          Method    `json:"method"`
	Features        []string  `json:"features,omitempty"`
	Score           float64   `json:"score"`
	ConfidenceLevel string    `json:"confidenceLevel"`
	Disclaimer      string    `json:"disclaimer"`
}

// Match is a scored catalog entry.
type Match struct {
	Candidate Candidate
	Score     float64
}

// MatchFeatures scores every entry that shares at least one label with features.
// A characteristic and a feature overlap when either contains the other; an exact
// match counts double. Scores are normalized by the entry's characteristic count and
// weighted by its confidence. Ties keep catalog order.
func (c *Catalog) MatchFeatures(features []string) []Match {
	lowered := make([]string, len(features))
	for i, f := range features {
		lowered[i] = strings.ToLower(f)
	}

	var matches []Match
	for _, cand := range c.candidates {
		points, hits := 0, 0
		for _, ch := range cand.Characteristics {
			ch = strings.ToLower(ch)
			for _, f := range lowered {
				if f == "" {
					continue
				}
				if strings.Contains(ch, f) || strings.Contains(f, ch) {
					hits++
					if ch == f {
						points += 2
					} else {
						points++
					}
				}
			}
		}
		if hits == 0 {
			continue
		}
		score := float64(points) / float64(len(cand.Characteristics)) * (cand.Confidence / 100)
		matches = append(matches, Match{Candidate: cand, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches
}

// Detect always returns an entry. Order of attempts: synthesized features (from the
// content, or from the filename when there is no content), the entry name or alias
// in the filename, characteristics in the filename, and finally a hash pick.
func (c *Catalog) Detect(img Image) Result {
	var (
		features []string
		method   Method
	)
	if len(img.Data) > 0 {
		features, method = ExtractFeatures(img.Data), MethodVisualFeatures
	} else {
		features, method = FilenameFeatures(img.Name), MethodFilenameFeatures
	}

	if matches := c.MatchFeatures(features); len(matches) > 0 && matches[0].Score > 0 {
		return newResult(matches[0].Candidate, method, features, matches[0].Score)
	}

	name := normalizedFilename(img.Name)
	if name != "" {
		if cand, ok := c.matchName(name); ok {
			return newResult(cand, MethodFilenameName, features, 0)
		}
		if cand, ratio, ok := c.matchCharacteristics(name); ok {
			return newResult(cand, MethodFilenameCharacteristics, features, ratio)
		}
	}

	seed := img.Data
	if len(seed) == 0 {
		seed = []byte(img.Name)
	}
	h := int64(contentHash(seed, pickSampleSize))
	return newResult(c.candidates[abs64(h)%int64(len(c.candidates))], MethodContentHash, features, 0)
}

func (c *Catalog) matchName(filename string) (Candidate, bool) {
	for _, cand := range c.candidates {
		if strings.Contains(filename, strings.ToLower(cand.Name)) {
			return cand, true
		}
		for _, alias := range cand.Aliases {
			if alias != "" && strings.Contains(filename, strings.ToLower(alias)) {
				return cand, true
			}
		}
	}
	return Candidate{}, false
}

func (c *Catalog) matchCharacteristics(filename string) (Candidate, float64, bool) {
	var (
		best      Candidate
		bestRatio float64
		found     bool
	)
	for _, cand := range c.candidates {
		n := 0
		for _, ch := range cand.Characteristics {
			if strings.Contains(filename, strings.ToLower(ch)) {
				n++
			}
		}
		if n == 0 {
			continue
		}
		ratio := float64(n) / float64(len(cand.Characteristics))
		if !found || ratio > bestRatio {
			best, bestRatio, found = cand, ratio, true
		}
	}
	return best, bestRatio, found
}

func normalizedFilename(name string) string {
	words := FilenameFeatures(name)
	if len(words) == 0 {
		return ""
	}
	return words[0]
}

func newResult(cand Candidate, m Method, features []string, score float64) Result {
	return Result{
		Disease:         cand,
		Method:          m,
		Features:        features,
		Score:           score,
		ConfidenceLevel: ConfidenceLevel(cand.Confidence),
		Disclaimer:      Disclaimer,
	}
}

// ConfidenceLevel buckets an entry's confidence for display.
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 90:
		return "High"
	case confidence >= 70:
		return "Moderate"
	default:
		return "Low"
	}
}
