package models

import (
	"github.com/google/uuid"
)

type Locale string

const (
	LocaleRU Locale = "ru"
	LocaleEN Locale = "en"
	LocaleKK Locale = "kk"
)

type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Position    int       `json:"position" db:"position"`
}

type Flower struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Name   string    `json:"name" db:"name"`
	Colors []string  `json:"colors" db:"colors"`
	// Price is in tiyn (minor currency units).
	Price int64 `json:"price" db:"price"`
}

type Media struct {
	ID          uuid.UUID `json:"id" db:"id"`
	URL         string    `json:"url" db:"url"`
	Position    int       `json:"position" db:"position"`
	IsThumbnail bool      `json:"is_thumbnail" db:"is_thumbnail"`
}

type Tag struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

type Bouquet struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	// Price is in tiyn (minor currency units).
	Price        int64     `json:"price" db:"price"`
	CategoryID   uuid.UUID `json:"category_id" db:"category_id"`
	Featured     bool      `json:"featured" db:"featured"`
	ThumbnailURL string    `json:"thumbnail_url" db:"thumbnail_url"`
	Media        []Media   `json:"media,omitempty"`
	Tags         []Tag     `json:"tags,omitempty"`
}

// Translation rows accompany catalog writes; reads resolve them with a
// default-locale fallback inside the repository.

type BouquetTranslation struct {
	Locale      Locale `json:"locale"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryTranslation struct {
	Locale      Locale `json:"locale"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type FlowerTranslation struct {
	Locale Locale `json:"locale"`
	Name   string `json:"name"`
}
