package dto

type RateRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
}
