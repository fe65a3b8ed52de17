package catalog

import (
	"testing"

	"shopfront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []model.Product {
	return []model.Product{
		{ID: "1", Name: "Smartphone X", Description: "A fast phone", Price: 7999, Category: "Electronics", CountInStock: 5},
		{ID: "2", Name: "Laptop Pro", Description: "Thin and light", Price: 89999, Category: "Electronics", CountInStock: 2},
		{ID: "3", Name: "Cotton Shirt", Description: "Casual wear", Price: 999, Category: "Clothing", CountInStock: 40},
		{ID: "4", Name: "Earbuds", Description: "Wireless PHONE audio", Price: 5000, Category: "Electronics", CountInStock: 12},
		{ID: "5", Name: "Desk Lamp", Description: "LED lamp", Price: 9999, Category: "Home", CountInStock: 12},
		{ID: "6", Name: "Smart Watch", Description: "Fitness tracking", Price: 9999, Category: "Electronics", CountInStock: 0},
	}
}

func ids(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApply(t *testing.T) {
	ratings := map[string]float64{"2": 4.5, "4": 3.9, "5": 4.5}

	tests := []struct {
		name    string
		query   Query
		want    []string
		wantErr error
	}{
		{
			name:  "no filters keeps source order",
			query: Query{},
			want:  []string{"1", "2", "3", "4", "5", "6"},
		},
		{
			name:  "category All keeps everything",
			query: Query{Category: "All"},
			want:  []string{"1", "2", "3", "4", "5", "6"},
		},
		{
			name:  "electronics in the 5000 to 9999 bucket",
			query: Query{Category: "Electronics", PriceRanges: []string{"range2"}},
			want:  []string{"1", "4", "6"},
		},
		{
			name:  "search matches name or description ignoring case",
			query: Query{Search: "phone"},
			want:  []string{"1", "4"},
		},
		{
			name:  "buckets are ORed",
			query: Query{PriceRanges: []string{"range1", "range7"}},
			want:  []string{"2", "3"},
		},
		{
			name:  "price low to high is stable",
			query: Query{Sort: SortPriceLowToHigh},
			want:  []string{"3", "4", "1", "5", "6", "2"},
		},
		{
			name:  "price high to low is stable",
			query: Query{Sort: SortPriceHighToLow},
			want:  []string{"2", "5", "6", "1", "4", "3"},
		},
		{
			name:  "best discount uses price descending",
			query: Query{Category: "Electronics", Sort: SortBestDiscount},
			want:  []string{"2", "6", "1", "4"},
		},
		{
			name:  "best selling uses stock descending",
			query: Query{Sort: SortBestSelling},
			want:  []string{"3", "4", "5", "1", "2", "6"},
		},
		{
			name:  "customer rating puts unrated last",
			query: Query{Sort: SortCustomerRating},
			want:  []string{"2", "5", "4", "1", "3", "6"},
		},
		{
			name:  "search with no match",
			query: Query{Search: "sofa"},
			want:  []string{},
		},
		{
			name:    "unknown price range",
			query:   Query{PriceRanges: []string{"range9"}},
			wantErr: model.ErrInvalidPriceRange,
		},
		{
			name:    "unknown sort",
			query:   Query{Sort: "popular"},
			wantErr: model.ErrInvalidSort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := testProducts()

			got, err := Apply(products, tt.query, ratings)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(products), "input must not be reordered")
		})
	}
}

func TestApply_ElectronicsBucketProperty(t *testing.T) {
	got, err := Apply(testProducts(), Query{Category: "Electronics", PriceRanges: []string{"range2"}}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	for _, p := range got {
		assert.Equal(t, "Electronics", p.Category)
		assert.GreaterOrEqual(t, p.Price, int64(5000))
		assert.LessOrEqual(t, p.Price, int64(9999))
	}
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortBestMatch, key)

	key, err = ParseSortKey("customerRating")
	require.NoError(t, err)
	assert.Equal(t, SortCustomerRating, key)

	_, err = ParseSortKey("random")
	assert.ErrorIs(t, err, model.ErrInvalidSort)
}

func TestPriceBuckets(t *testing.T) {
	buckets := PriceBuckets()
	require.Len(t, buckets, 8)
	assert.Equal(t, "range1", buckets[0].ID)
	assert.Equal(t, int64(25), buckets[0].Min)
	assert.True(t, buckets[7].Contains(5_000_000))
	assert.False(t, buckets[0].Contains(24))
	assert.True(t, buckets[0].Contains(4999))

	buckets[0].Min = 0
	assert.Equal(t, int64(25), PriceBuckets()[0].Min)
}

func TestBucketsByID(t *testing.T) {
	got, err := BucketsByID([]string{"range3", "range1"})
	require.NoError(t, err)
	assert.Equal(t, "range3", got[0].ID)
	assert.Equal(t, "range1", got[1].ID)

	got, err = BucketsByID(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = BucketsByID([]string{"range1", ""})
	assert.ErrorIs(t, err, model.ErrInvalidPriceRange)
}
