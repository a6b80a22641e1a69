package feed

// Item is a single entry pulled from a subscription
type Item struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	GUID  string `json:"guid"`
	Feed  string `json:"feed,omitempty"`
}
