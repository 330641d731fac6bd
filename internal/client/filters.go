package client

import (
	"net/url"
	"strconv"
	"time"
)

// Params is a flat filter set for list endpoints. Empty values are left out
// of the query string.
type Params map[string]string

func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	for key, value := range p {
		if value != "" {
			v.Set(key, value)
		}
	}
	return v
}

// SearchFilters is the filter set understood by /books/search/ and
// /books/bulk_delete_filtered/. Zero values are omitted from the query.
type SearchFilters struct {
	Search     string
	Category   int64
	Author     int64
	Publisher  int64
	Language   int64
	Series     int64
	BookFormat string
	// Genres produces one "genres" entry per value, in order.
	Genres []string

	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	MaxRating *float64

	MinPublicationDate time.Time
	MaxPublicationDate time.Time

	HasCoverImage bool
	FavoritesOnly bool

	Ordering string
	Page     int
}

func (f SearchFilters) Values() url.Values {
	v := make(url.Values)

	setString(v, "search", f.Search)
	setID(v, "category", f.Category)
	setID(v, "author", f.Author)
	setID(v, "publisher", f.Publisher)
	setID(v, "language", f.Language)
	setID(v, "series", f.Series)
	setString(v, "book_format", f.BookFormat)

	for _, g := range f.Genres {
		if g != "" {
			v.Add("genres", g)
		}
	}

	setFloat(v, "min_price", f.MinPrice)
	setFloat(v, "max_price", f.MaxPrice)
	setFloat(v, "min_rating", f.MinRating)
	setFloat(v, "max_rating", f.MaxRating)

	setDate(v, "min_publication_date", f.MinPublicationDate)
	setDate(v, "max_publication_date", f.MaxPublicationDate)

	setBool(v, "has_cover_image", f.HasCoverImage)
	setBool(v, "favorites_only", f.FavoritesOnly)

	setString(v, "ordering", f.Ordering)
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}

	return v
}

// Float is a helper for the optional numeric bounds.
func Float(v float64) *float64 { return &v }

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setID(v url.Values, key string, id int64) {
	if id != 0 {
		v.Set(key, strconv.FormatInt(id, 10))
	}
}

func setFloat(v url.Values, key string, f *float64) {
	if f != nil {
		v.Set(key, strconv.FormatFloat(*f, 'f', -1, 64))
	}
}

func setDate(v url.Values, key string, t time.Time) {
	if !t.IsZero() {
		v.Set(key, t.Format(time.DateOnly))
	}
}

func setBool(v url.Values, key string, b bool) {
	if b {
		v.Set(key, "true")
	}
}
