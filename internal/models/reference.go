package models

import "time"

type Author struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Bio         *string    `json:"bio,omitempty"`
	BirthDate   *string    `json:"birth_date,omitempty"`
	Nationality *string    `json:"nationality,omitempty"`
	BooksCount  int        `json:"books_count,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type Category struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	BooksCount  int        `json:"books_count,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type Publisher struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	BooksCount int        `json:"books_count,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

type Language struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type Series struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	BooksCount int    `json:"books_count,omitempty"`
}

type Genre struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type Character struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Award struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Year *int   `json:"year,omitempty"`
}

// DropdownData holds every reference list a book form needs.
type DropdownData struct {
	Categories []Category  `json:"categories"`
	Authors    []Author    `json:"authors"`
	Publishers []Publisher `json:"publishers"`
	Languages  []Language  `json:"languages"`
	Series     []Series    `json:"series"`
	Genres     []Genre     `json:"genres"`
}
