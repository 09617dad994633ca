package tmdb

// SearchQuery holds the validated parameters of one movie search.
type SearchQuery struct {
	Text  string
	Limit int
	Page  int  // 1-based; values below 1 request the first page
	Year  *int // nil or non-positive means no year filter
}

// MovieRecord is one movie from a search result.
type MovieRecord struct {
	Title       string
	Overview    *string
	ReleaseDate *string
}

// SearchOutcome is the result of one search call.
type SearchOutcome struct {
	Movies       []MovieRecord
	Page         int
	TotalResults int
	TotalPages   int
}

// movieResult is a single entry of the TMDb search response.
type movieResult struct {
	Title       string  `json:"title"`
	Overview    *string `json:"overview"`
	ReleaseDate *string `json:"release_date"`
}

// searchResponse is the TMDb paginated search response.
type searchResponse struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}
