package model

import "time"

// Investment is an investment opportunity offered by a village.
type Investment struct {
	ID           string    `bson:"_id" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	Sector       string    `bson:"sector" json:"sector"`
	DesaID       string    `bson:"desa_id" json:"desa_id"`
	Location     string    `bson:"location" json:"location"`
	Budget       int64     `bson:"budget" json:"budget"`
	LandArea     float64   `bson:"land_area,omitempty" json:"land_area,omitempty"`
	ContactName  string    `bson:"contact_name" json:"contact_name"`
	ContactPhone string    `bson:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	ImageURLs    []string  `bson:"image_urls" json:"image_urls"`
	Status       string    `bson:"status" json:"status"`
	CreatedBy    string    `bson:"created_by" json:"created_by"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Investment statuses.
const (
	InvestmentDraft     = "draft"
	InvestmentPublished = "published"
)
