package catalog

import (
	"math"

	"shopfront/internal/model"
)

// PriceBucket is an inclusive price range shoppers can filter by.
type PriceBucket struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max"`
}

// Contains reports whether price falls inside the bucket, bounds included.
func (b PriceBucket) Contains(price int64) bool {
	return price >= b.Min && price <= b.Max
}

var priceBuckets = []PriceBucket{
	{ID: "range1", Label: "₹25 - ₹4,999", Min: 25, Max: 4999},
	{ID: "range2", Label: "₹5,000 - ₹9,999", Min: 5000, Max: 9999},
	{ID: "range3", Label: "₹10,000 - ₹19,999", Min: 10000, Max: 19999},
	{ID: "range4", Label: "₹20,000 - ₹29,999", Min: 20000, Max: 29999},
	{ID: "range5", Label: "₹30,000 - ₹49,999", Min: 30000, Max: 49999},
	{ID: "range6", Label: "₹50,000 - ₹74,999", Min: 50000, Max: 74999},
	{ID: "range7", Label: "₹75,000 - ₹99,999", Min: 75000, Max: 99999},
	{ID: "range8", Label: "₹1,00,000+", Min: 100000, Max: math.MaxInt64},
}

// PriceBuckets returns the price filter options in display order.
func PriceBuckets() []PriceBucket {
	out := make([]PriceBucket, len(priceBuckets))
	copy(out, priceBuckets)
	return out
}

// BucketsByID resolves bucket ids. Any unknown id fails the whole lookup.
func BucketsByID(ids []string) ([]PriceBucket, error) {
	out := make([]PriceBucket, 0, len(ids))
	for _, id := range ids {
		found := false
		for _, b := range priceBuckets {
			if b.ID == id {
				out = append(out, b)
				found = true
				break
			}
		}
		if !found {
			return nil, model.ErrInvalidPriceRange
		}
	}
	return out, nil
}
