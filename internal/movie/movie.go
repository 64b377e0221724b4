package movie

// Movie is one stored catalog entry.
//
// Year and Poster are opaque display strings. Rating has no enforced range.
type Movie struct {
	Title  string  `json:"title"`
	Year   string  `json:"year"`
	Rating float64 `json:"rating"`
	Poster string  `json:"poster"`
}
