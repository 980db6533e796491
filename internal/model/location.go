package model

import "time"

// Location review statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Location is a village potential submitted by an operator and reviewed by an admin.
type Location struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	DesaID      string    `bson:"desa_id" json:"desa_id"`
	Category    string    `bson:"category" json:"category"`
	Description string    `bson:"description" json:"description"`
	Latitude    float64   `bson:"latitude" json:"latitude"`
	Longitude   float64   `bson:"longitude" json:"longitude"`
	ImageURL    string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Status      string    `bson:"status" json:"status"`
	SubmittedBy string    `bson:"submitted_by" json:"submitted_by"`
	ReviewedBy  string    `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// ApprovalStats counts locations per review status.
type ApprovalStats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}
