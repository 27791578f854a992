package model

// Sentiment is the directional classification of a headline.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// Classification is the classifier's verdict for a single headline.
// Evidence lists the matched phrases and keywords, de-duplicated and capped.
type Classification struct {
	Sentiment Sentiment `json:"sentiment"`
	Evidence  []string  `json:"evidence"`
}

// Headline is a raw news item as returned by the news feed.
type Headline struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Date   string `json:"date"`
}

// NewsArticle is a classified headline ready for the API and notifier.
type NewsArticle struct {
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Date      string    `json:"date"`
	Sentiment Sentiment `json:"sentiment"`
	Evidence  []string  `json:"evidence,omitempty"`
	Impact    string    `json:"impact"`
}
