package catalog

import (
	"sort"
	"strings"

	"shopfront/internal/model"
)

// AllCategories matches every category.
const AllCategories = "All"

// SortKey orders a product listing.
type SortKey string

const (
	SortBestMatch      SortKey = "bestMatch"
	SortPriceLowToHigh SortKey = "priceLowToHigh"
	SortPriceHighToLow SortKey = "priceHighToLow"
	SortBestSelling    SortKey = "bestSelling"
	SortBestDiscount   SortKey = "bestDiscount"
	SortCustomerRating SortKey = "customerRating"
)

// ParseSortKey validates s. An empty string means SortBestMatch.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortBestMatch, nil
	case SortBestMatch, SortPriceLowToHigh, SortPriceHighToLow, SortBestSelling, SortBestDiscount, SortCustomerRating:
		return k, nil
	default:
		return "", model.ErrInvalidSort
	}
}

// Query describes one product listing request.
type Query struct {
	Category    string
	Search      string
	PriceRanges []string
	Sort        SortKey
}

// Apply filters products by category, then search text, then price
// buckets, and finally sorts them. ratings maps product id to average
// rating and is only read for SortCustomerRating. The input slice is not modified.
func Apply(products []model.Product, q Query, ratings map[string]float64) ([]model.Product, error) {
	buckets, err := BucketsByID(q.PriceRanges)
	if err != nil {
		return nil, err
	}

	sortKey := q.Sort
	if sortKey == "" {
		sortKey = SortBestMatch
	}
	if _, err := ParseSortKey(string(sortKey)); err != nil {
		return nil, err
	}

	out := FilterByCategory(products, q.Category)
	out = FilterBySearch(out, q.Search)
	out = FilterByPrice(out, buckets)
	SortProducts(out, sortKey, ratings)

	return out, nil
}

// FilterByCategory keeps products in category. "All" and "" keep everything.
func FilterByCategory(products []model.Product, category string) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if category == "" || category == AllCategories || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// FilterBySearch keeps products whose name or description contains search, ignoring case.
func FilterBySearch(products []model.Product, search string) []model.Product {
	if search == "" {
		return products
	}

	needle := strings.ToLower(search)
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByPrice keeps products inside any of buckets. No buckets means no filter.
func FilterByPrice(products []model.Product, buckets []PriceBucket) []model.Product {
	if len(buckets) == 0 {
		return products
	}

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		for _, b := range buckets {
			if b.Contains(p.Price) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// SortProducts orders products in place. Ties keep their incoming order.
func SortProducts(products []model.Product, key SortKey, ratings map[string]float64) {
	switch key {
	case SortPriceLowToHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHighToLow, SortBestDiscount:
		// Best discount has no discount data to go on; a higher price stands in for it.
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortBestSelling:
		// Stock count stands in for sales volume.
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CountInStock > products[j].CountInStock
		})
	case SortCustomerRating:
		sort.SliceStable(products, func(i, j int) bool {
			ri, iRated := ratings[products[i].ID]
			rj, jRated := ratings[products[j].ID]
			if iRated != jRated {
				return iRated
			}
			return ri > rj
		})
	}
}
