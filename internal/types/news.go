package types

// Article is a news item. Description and URL may be empty.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Analysis is the three-part reasoning produced by the model.
type Analysis struct {
	TechnicalReason string `json:"technical_reason"`
	NewsReason      string `json:"news_reason"`
	Summary         string `json:"summary"`
}

// EmptyAnalysis has every field set to "N/A".
func EmptyAnalysis() Analysis {
	return Analysis{TechnicalReason: NA, NewsReason: NA, Summary: NA}
}
