package tmdb

// Genre as exposed to the sync layer
type Genre struct {
	ID   int
	Name string
}

// Movie is the provider-neutral shape handed to the sync layer. Genres are
// still raw provider ids at this point; the sync service maps them to rows.
type Movie struct {
	TmdbID       int
	Title        string
	Overview     string
	ReleaseDate  string // YYYY-MM-DD, may be empty
	PosterPath   string
	BackdropPath string
	VoteAverage  float64
	VoteCount    int
	Popularity   float64
	GenreIDs     []int
}

// MovieList carries one page of popular movies plus pagination info
type MovieList struct {
	Movies      []Movie
	CurrentPage int
	TotalPages  int
}

// ============================================
// TMDB API WIRE TYPES
// ============================================

type genreListResponse struct {
	Genres []genreEntry `json:"genres"`
}

type genreEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type moviesResponse struct {
	Page         int          `json:"page"`
	Results      []movieEntry `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

type movieEntry struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int   `json:"genre_ids"`
}
