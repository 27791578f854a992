package lexicon

// Curated matching vocabulary. Multi-word phrases carry more weight than
// single keywords; single words are matched as whole tokens to avoid
// substring false positives like "risk" inside "brisk".

var bullishPhrases = []string{
	"revenue growth", "profit growth", "strong growth", "record profit",
	"record revenue", "record high", "beats estimates", "beats expectations",
	"above expectations", "better than expected", "strong results",
	"strong earnings", "strong demand", "market share gain",
	"order win", "new contract", "strategic partnership",
	"strategic acquisition", "share buyback", "dividend hike",
	"dividend increase", "price target raised", "rating upgrade",
	"upgraded to buy", "positive outlook", "guidance raised",
	"raises guidance", "all-time high", "debt reduction",
	"margin expansion", "margin improvement", "stake increase",
	"fund inflow", "net profit up", "net profit rose",
	"net profit jumped", "top line growth", "bottom line growth",
}

var bearishPhrases = []string{
	"net loss", "revenue decline", "revenue miss", "profit decline",
	"missed estimates", "missed expectations", "below expectations",
	"worse than expected", "weak results", "weak earnings",
	"weak demand", "market share loss", "order cancellation",
	"rating downgrade", "downgraded to sell", "negative outlook",
	"guidance cut", "lowers guidance", "guidance lowered",
	"debt concern", "debt burden", "high debt", "rising debt",
	"margin pressure", "margin contraction", "stake sale",
	"fund outflow", "net profit fell", "net profit declined",
	"price target cut", "price target lowered", "under investigation",
	"regulatory action", "penalty imposed", "consent order",
	"profit warning", "earnings miss", "layoff announced",
}

// Hand-tuned single-word overrides merged into the polarity dictionary.
// The two lists are disjoint by construction.
var bullishWords = []string{
	"growth", "profit", "expansion", "acquisition", "partnership",
	"dividend", "upgrade", "milestone", "innovation", "launch",
	"beats", "surpass", "breakthrough", "bullish", "rally",
	"buyback", "outperform", "recovery", "boost", "gains",
	"soars", "surges", "jumps", "climbs", "rises",
}

var bearishWords = []string{
	"loss", "losses", "debt", "downgrade", "restructuring",
	"layoffs", "fraud", "penalty", "decline", "investigation",
	"lawsuit", "default", "recall", "warning", "bearish",
	"crash", "impairment", "underperform", "plunges", "tumbles",
	"slumps", "plummets", "tanks", "sinks", "slides",
}
