// Package lexicon holds the immutable matching vocabulary used by the
// sentiment classifier: curated bullish/bearish phrase lists plus word sets
// built by merging an external polarity dictionary with hand-tuned overrides.
package lexicon

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// Lexicon is read-only after construction. The classifier never mutates it,
// so a single instance is safe for concurrent use.
type Lexicon struct {
	PositivePhrases []string
	NegativePhrases []string
	PositiveWords   map[string]struct{}
	NegativeWords   map[string]struct{}
}

// dictionary is the on-disk polarity dictionary format. Either list may be
// absent and is then treated as empty.
type dictionary struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// Load builds the full lexicon from the polarity dictionary at path merged
// with the curated lists. On an unreachable or malformed dictionary it
// returns an error; callers should fall back to Curated() and keep running.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read polarity dictionary: %w", err)
	}
	var dict dictionary
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("parse polarity dictionary: %w", err)
	}
	return build(dict.Positive, dict.Negative), nil
}

// Curated returns the degraded-mode lexicon built from the curated lists
// alone, with no external dictionary.
func Curated() *Lexicon {
	return build(nil, nil)
}

func build(dictPositive, dictNegative []string) *Lexicon {
	lex := &Lexicon{
		PositivePhrases: bullishPhrases,
		NegativePhrases: bearishPhrases,
		PositiveWords:   make(map[string]struct{}, len(dictPositive)+len(bullishWords)),
		NegativeWords:   make(map[string]struct{}, len(dictNegative)+len(bearishWords)),
	}
	for _, w := range dictPositive {
		lex.PositiveWords[w] = struct{}{}
	}
	for _, w := range bullishWords {
		lex.PositiveWords[w] = struct{}{}
	}
	for _, w := range dictNegative {
		lex.NegativeWords[w] = struct{}{}
	}
	for _, w := range bearishWords {
		lex.NegativeWords[w] = struct{}{}
	}

	// A token present in both sets would make classification for that token
	// undefined. Flag it and exclude it from both sides rather than quietly
	// picking a polarity.
	for w := range lex.PositiveWords {
		if _, clash := lex.NegativeWords[w]; clash {
			log.Printf("[WARN] lexicon: token %q appears in both polarity sets, excluding it", w)
			delete(lex.PositiveWords, w)
			delete(lex.NegativeWords, w)
		}
	}
	return lex
}
