package entity

// Banner is a promotional banner served by the catalog service.
type Banner struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	LinkURL  string `json:"linkUrl,omitempty"`
	Active   bool   `json:"active"`
}
