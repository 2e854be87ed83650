package domain

// Book represents a title in the catalog. Books are constructed at catalog
// load time and never mutated afterward; the title is the catalog key.
type Book struct {
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	CoverImage string  `json:"cover_image,omitempty"`
}
