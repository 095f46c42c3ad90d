package domain

// Card represents one drawable fortune card. The ID is derived from the
// card's name at import time and is immutable once assigned; readings store
// full Card values so a later catalog re-import does not rewrite history.
type Card struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortText string `json:"short_text"`
	LongText  string `json:"long_text"`
}
