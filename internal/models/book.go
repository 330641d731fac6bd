package models

import "time"

// Book covers both the list and the detail representation. List responses
// fill the *_name fields, detail responses fill the nested objects.
type Book struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ISBN        string  `json:"isbn"`
	Description *string `json:"description,omitempty"`
	GoodreadsID *string `json:"goodreads_id,omitempty"`

	AuthorName    string `json:"author_name,omitempty"`
	CategoryName  string `json:"category_name,omitempty"`
	PublisherName string `json:"publisher_name,omitempty"`
	LanguageName  string `json:"language_name,omitempty"`
	SeriesName    string `json:"series_name,omitempty"`

	Author     *Author     `json:"author,omitempty"`
	Category   *Category   `json:"category,omitempty"`
	Publisher  *Publisher  `json:"publisher,omitempty"`
	Language   *Language   `json:"language,omitempty"`
	Series     *Series     `json:"series,omitempty"`
	Genres     []Genre     `json:"genres,omitempty"`
	Characters []Character `json:"characters,omitempty"`
	Awards     []Award     `json:"awards,omitempty"`

	SeriesInfo    *string  `json:"series_info,omitempty"`
	SeriesDisplay *string  `json:"series_display,omitempty"`
	GenresDisplay []string `json:"genres_display,omitempty"`

	// Decimal fields are serialized as strings by the API.
	Price         string  `json:"price"`
	AverageRating *string `json:"average_rating"`
	RatingDisplay string  `json:"rating_display,omitempty"`
	NumRatings    int     `json:"num_ratings"`
	LikedPercent  *int    `json:"liked_percent,omitempty"`

	RatingDistribution map[string]float64 `json:"rating_distribution,omitempty"`

	PublicationDate      string  `json:"publication_date"`
	FirstPublicationDate *string `json:"first_publication_date,omitempty"`
	PageCount            *int    `json:"page_count"`
	BookFormat           *string `json:"book_format"`
	Edition              *string `json:"edition,omitempty"`

	CoverImage        *string `json:"cover_image"`
	CoverImageURL     *string `json:"cover_image_url"`
	CoverImageDisplay *string `json:"cover_image_display"`

	Settings     *string  `json:"settings,omitempty"`
	SettingsList []string `json:"settings_list,omitempty"`

	IsFavorited bool       `json:"is_favorited"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// BookInput is the create/update payload. Relations are sent as ids.
type BookInput struct {
	Title                string  `json:"title,omitempty"`
	ISBN                 string  `json:"isbn,omitempty"`
	Description          string  `json:"description,omitempty"`
	GoodreadsID          string  `json:"goodreads_id,omitempty"`
	Author               int64   `json:"author,omitempty"`
	Category             int64   `json:"category,omitempty"`
	Publisher            int64   `json:"publisher,omitempty"`
	Language             int64   `json:"language,omitempty"`
	Series               int64   `json:"series,omitempty"`
	SeriesInfo           string  `json:"series_info,omitempty"`
	Genres               []int64 `json:"genres,omitempty"`
	Characters           []int64 `json:"characters,omitempty"`
	Awards               []int64 `json:"awards,omitempty"`
	Price                string  `json:"price,omitempty"`
	PublicationDate      string  `json:"publication_date,omitempty"`
	FirstPublicationDate string  `json:"first_publication_date,omitempty"`
	PageCount            int     `json:"page_count,omitempty"`
	BookFormat           string  `json:"book_format,omitempty"`
	Edition              string  `json:"edition,omitempty"`
	CoverImageURL        string  `json:"cover_image_url,omitempty"`
	AverageRating        string  `json:"average_rating,omitempty"`
	NumRatings           int     `json:"num_ratings,omitempty"`
	LikedPercent         int     `json:"liked_percent,omitempty"`
	BBEScore             int     `json:"bbe_score,omitempty"`
	BBEVotes             int     `json:"bbe_votes,omitempty"`
	Settings             string  `json:"settings,omitempty"`
}

const (
	BookFormatHardcover     = "hardcover"
	BookFormatPaperback     = "paperback"
	BookFormatMassPaperback = "mass_paperback"
	BookFormatAudiobook     = "audiobook"
	BookFormatEbook         = "ebook"
	BookFormatBoardBook     = "board_book"
	BookFormatOther         = "other"
)

type Favorite struct {
	ID        int64     `json:"id"`
	Book      *Book     `json:"book"`
	CreatedAt time.Time `json:"created_at"`
}

type FavoriteCreateRequest struct {
	BookID int64 `json:"book_id"`
}
