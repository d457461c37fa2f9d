package dto

// RateMovieDTO for creating or updating a rating. One-decimal precision is
// checked in the handler since binding tags can't express it.
type RateMovieDTO struct {
	Rating float64 `json:"rating" binding:"required,min=1,max=10"`
}

// RatingStatsResponse carries the recomputed aggregate after a rating
// submission
type RatingStatsResponse struct {
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
	Message       string  `json:"message"`
}
