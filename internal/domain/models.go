package domain

// JustNow is the postedDate stamped on freshly created listings.
const JustNow = "Just now"

type Listing struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Price                float64  `json:"price"`
	Category             string   `json:"category"`
	Subject              string   `json:"subject,omitempty"`
	Condition            string   `json:"condition"`
	Seller               string   `json:"seller"`
	Rating               float64  `json:"rating"`
	PostedDate           string   `json:"postedDate"`
	IsBlockchainVerified bool     `json:"isBlockchainVerified"`
	Image                string   `json:"image,omitempty"`
	Images               []string `json:"images,omitempty"`
	Location             string   `json:"location,omitempty"`
}

// Gallery returns every image of the listing, treating a lone Image as a one-element list.
func (l Listing) Gallery() []string {
	if len(l.Images) > 0 {
		return append([]string(nil), l.Images...)
	}
	if l.Image != "" {
		return []string{l.Image}
	}
	return nil
}

// ListingInput is what the Sell form submits. Price stays a string until validated.
type ListingInput struct {
	Title         string
	Description   string
	Price         string
	Category      string
	Condition     string
	Subject       string
	Location      string
	Image         string
	UseBlockchain bool
	Rating        *float64
}
