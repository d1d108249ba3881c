package domain

// SentimentResponse carries a quantized sentiment label:
// -3 negative, 0 neutral, 3 positive.
type SentimentResponse struct {
	Score int `json:"score"`
}
