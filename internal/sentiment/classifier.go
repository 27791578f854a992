// Package sentiment classifies the directional tone of financial-news
// headlines and builds human-readable impact notes from the result.
package sentiment

import (
	"strings"

	"ValueScope/internal/lexicon"
	"ValueScope/internal/model"
)

const (
	phraseWeight   = 3  // multi-word phrases are the more reliable signal
	wordWeight     = 1
	negationWindow = 15 // characters inspected immediately before a phrase match
	maxEvidence    = 6  // distinct evidence items recorded per side
)

// Negation markers that flip the polarity of a phrase they precede.
var negationMarkers = []string{"no ", "not ", "without ", "lack of ", "failed to ", "unable to "}

// Classify scores text against the lexicon and returns one of
// bullish/bearish/neutral with the matched evidence. Every input maps to a
// valid classification; there is no error path.
func Classify(text string, lex *lexicon.Lexicon) model.Classification {
	if strings.TrimSpace(text) == "" {
		return model.Classification{Sentiment: model.SentimentNeutral, Evidence: []string{}}
	}

	lower := strings.ToLower(text)

	var bullScore, bearScore int
	var bullHits, bearHits []string

	// Phase 1: multi-word phrases, with negation flipping.
	for _, phrase := range lex.PositivePhrases {
		idx := strings.Index(lower, phrase)
		if idx < 0 {
			continue
		}
		if negatedAt(lower, idx) {
			bearScore += phraseWeight
			bearHits = recordHit(bearHits, "not "+phrase)
		} else {
			bullScore += phraseWeight
			bullHits = recordHit(bullHits, phrase)
		}
	}
	for _, phrase := range lex.NegativePhrases {
		idx := strings.Index(lower, phrase)
		if idx < 0 {
			continue
		}
		if negatedAt(lower, idx) {
			bullScore += phraseWeight
			bullHits = recordHit(bullHits, "no "+phrase)
		} else {
			bearScore += phraseWeight
			bearHits = recordHit(bearHits, phrase)
		}
	}

	// Phase 2: single keywords on whole tokens. A token never scores both
	// polarities; the lexicon keeps its sets disjoint.
	for _, token := range tokenize(lower) {
		if _, ok := lex.PositiveWords[token]; ok {
			bullScore += wordWeight
			bullHits = recordHit(bullHits, token)
			continue
		}
		if _, ok := lex.NegativeWords[token]; ok {
			bearScore += wordWeight
			bearHits = recordHit(bearHits, token)
		}
	}

	// A meaningful gap decides outright. A one-sided reading stands even when
	// weak, but any contest without a clear gap falls back to neutral.
	diff := bullScore - bearScore
	switch {
	case diff >= 2:
		return model.Classification{Sentiment: model.SentimentBullish, Evidence: bullHits}
	case diff <= -2:
		return model.Classification{Sentiment: model.SentimentBearish, Evidence: bearHits}
	case bullScore > 0 && bearScore == 0:
		return model.Classification{Sentiment: model.SentimentBullish, Evidence: bullHits}
	case bearScore > 0 && bullScore == 0:
		return model.Classification{Sentiment: model.SentimentBearish, Evidence: bearHits}
	default:
		evidence := append(bullHits, bearHits...)
		if evidence == nil {
			evidence = []string{}
		}
		return model.Classification{Sentiment: model.SentimentNeutral, Evidence: evidence}
	}
}

// negatedAt reports whether a negation marker sits inside the fixed window
// immediately before position idx. A marker further back does not count.
func negatedAt(lower string, idx int) bool {
	start := idx - negationWindow
	if start < 0 {
		start = 0
	}
	window := lower[start:idx]
	for _, marker := range negationMarkers {
		if strings.Contains(window, marker) {
			return true
		}
	}
	return false
}

// tokenize splits lowercased text into runs of ASCII letters. Digits,
// punctuation and non-Latin characters act as separators, so non-Latin text
// passes through unmatched rather than erroring.
func tokenize(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		return r < 'a' || r > 'z'
	})
}

// recordHit appends item unless it is a duplicate or the evidence cap was hit.
// The score still accumulates either way; only the recorded evidence is capped.
func recordHit(hits []string, item string) []string {
	if len(hits) >= maxEvidence {
		return hits
	}
	for _, h := range hits {
		if h == item {
			return hits
		}
	}
	return append(hits, item)
}
