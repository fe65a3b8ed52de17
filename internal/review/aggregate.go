package review

import (
	"math"

	"shopfront/internal/model"
)

// Summary is the rating breakdown of a set of reviews.
type Summary struct {
	TotalReviews int         `json:"totalReviews"`
	AvgRating    float64     `json:"avgRating"`
	RatingCounts map[int]int `json:"ratingCounts"`
}

// Aggregate computes the average rating, rounded to one decimal place, and
// the count of reviews per star. Every star from 1 to 5 is present in
// RatingCounts. An empty list averages to 0.
func Aggregate(reviews []model.Review) Summary {
	s := Summary{
		TotalReviews: len(reviews),
		RatingCounts: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return s
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		if _, ok := s.RatingCounts[r.Rating]; ok {
			s.RatingCounts[r.Rating]++
		}
	}

	s.AvgRating = roundToTenth(float64(sum) / float64(len(reviews)))
	return s
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
