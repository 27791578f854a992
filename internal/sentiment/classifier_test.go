package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ValueScope/internal/lexicon"
	"ValueScope/internal/model"
)

func TestClassify_NoMatchesIsNeutral(t *testing.T) {
	lex := lexicon.Curated()
	c := Classify("Company holds annual general meeting in Mumbai", lex)
	assert.Equal(t, model.SentimentNeutral, c.Sentiment)
	// Evidence stays an empty slice rather than nil so JSON renders [].
	assert.NotNil(t, c.Evidence)
	assert.Empty(t, c.Evidence)
}

func TestClassify_EmptyText(t *testing.T) {
	lex := lexicon.Curated()
	for _, text := range []string{"", "   ", "\t\n"} {
		c := Classify(text, lex)
		assert.Equal(t, model.SentimentNeutral, c.Sentiment)
		assert.NotNil(t, c.Evidence)
		assert.Empty(t, c.Evidence)
	}
}

func TestClassify_BullishPhrase(t *testing.T) {
	lex := lexicon.Curated()
	c := Classify("TCS reports strong revenue growth in Q3", lex)
	assert.Equal(t, model.SentimentBullish, c.Sentiment)
	assert.Contains(t, c.Evidence, "revenue growth")
}

func TestClassify_BearishPhrase(t *testing.T) {
	lex := lexicon.Curated()
	c := Classify("Vodafone Idea posts net loss for eighth straight quarter", lex)
	assert.Equal(t, model.SentimentBearish, c.Sentiment)
	assert.Contains(t, c.Evidence, "net loss")
}

func TestClassify_NegatedBullishPhraseTurnsBearish(t *testing.T) {
	lex := lexicon.Curated()
	c := Classify("No revenue growth this quarter, analysts say", lex)
	assert.Equal(t, model.SentimentBearish, c.Sentiment)
	assert.Contains(t, c.Evidence, "not revenue growth")
}

func TestClassify_NegatedBearishPhraseTurnsBullish(t *testing.T) {
	lex := lexicon.Curated()
	c := Classify("No net loss this year as operations stabilise", lex)
	assert.Equal(t, model.SentimentBullish, c.Sentiment)
	assert.Contains(t, c.Evidence, "no net loss")
}

func TestClassify_NegationWindow(t *testing.T) {
	lex := lexicon.Curated()

	// Marker inside the window flips the phrase.
	near := Classify("not a record profit year", lex)
	assert.Equal(t, model.SentimentBearish, near.Sentiment)
	assert.Contains(t, near.Evidence, "not record profit")

	// Marker further back than the window does not.
	far := Classify("not anticipating any record profit", lex)
	assert.Equal(t, model.SentimentBullish, far.Sentiment)
	assert.Contains(t, far.Evidence, "record profit")
}

func TestClassify_PhraseOutweighsStrayTokens(t *testing.T) {
	lex := lexicon.Curated()
	c := Classify("Company beats estimates despite lawsuit and debt", lex)
	assert.Equal(t, model.SentimentBullish, c.Sentiment)
	assert.Contains(t, c.Evidence, "beats estimates")
}

func TestClassify_SingleWeakKeywordStands(t *testing.T) {
	lex := lexicon.Curated()
	c := Classify("Stock gains today", lex)
	assert.Equal(t, model.SentimentBullish, c.Sentiment)
	assert.Equal(t, []string{"gains"}, c.Evidence)
}

func TestClassify_ContestedWithoutGapIsNeutral(t *testing.T) {
	lex := lexicon.Curated()
	c := Classify("growth amid losses", lex)
	assert.Equal(t, model.SentimentNeutral, c.Sentiment)
	// Neutral keeps evidence from both sides.
	assert.Contains(t, c.Evidence, "growth")
	assert.Contains(t, c.Evidence, "losses")
}

func TestClassify_EvidenceDeduplicated(t *testing.T) {
	lex := lexicon.Curated()
	c := Classify("growth growth growth", lex)
	require.Equal(t, model.SentimentBullish, c.Sentiment)
	assert.Equal(t, []string{"growth"}, c.Evidence)
}

func TestClassify_EvidenceCapped(t *testing.T) {
	lex := lexicon.Curated()
	c := Classify("growth profit expansion dividend upgrade milestone innovation launch", lex)
	require.Equal(t, model.SentimentBullish, c.Sentiment)
	assert.Len(t, c.Evidence, maxEvidence)
}

func TestClassify_Deterministic(t *testing.T) {
	lex := lexicon.Curated()
	text := "Infosys beats estimates, announces share buyback amid margin pressure"
	first := Classify(text, lex)
	second := Classify(text, lex)
	assert.Equal(t, first, second)
}

func TestClassify_CaseInsensitive(t *testing.T) {
	lex := lexicon.Curated()
	upper := Classify("RECORD PROFIT FOR RELIANCE", lex)
	mixed := Classify("Record Profit for Reliance", lex)
	assert.Equal(t, model.SentimentBullish, upper.Sentiment)
	assert.Equal(t, upper.Sentiment, mixed.Sentiment)
	assert.Equal(t, upper.Evidence, mixed.Evidence)
}

func TestClassify_NonLatinTextIsNeutral(t *testing.T) {
	lex := lexicon.Curated()
	c := Classify("कंपनी की तिमाही रिपोर्ट जारी", lex)
	assert.Equal(t, model.SentimentNeutral, c.Sentiment)
	assert.Empty(t, c.Evidence)
}

func TestTokenize(t *testing.T) {
	got := tokenize("q3-results: profit up 20%, margins steady")
	assert.Equal(t, []string{"q", "results", "profit", "up", "margins", "steady"}, got)
}
