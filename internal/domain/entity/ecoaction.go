package entity

import (
	"time"
)

const (
	EcoActionStatusPending  = "pending"
	EcoActionStatusApproved = "approved"
	EcoActionStatusRejected = "rejected"
)

// EcoActionCategories maps submission categories to the counter the
// approval workflow increments on top of totalActions.
var EcoActionCategories = map[string]string{
	"recycling": "recyclingActions",
	"energy":    "energyActions",
	"water":     "waterActions",
	"transport": "transportActions",
	"waste":     "wasteActions",
	"nature":    "natureActions",
}

type EcoAction struct {
	ID          string `firestore:"id" json:"id"`
	UserID      string `firestore:"userId" json:"userId"`
	Category    string `firestore:"category" json:"category"`
	Description string `firestore:"description" json:"description"`
	PhotoURL    string `firestore:"photoURL,omitempty" json:"photoURL,omitempty"`
	Status      string `firestore:"status" json:"status"`

	SubmittedAt  time.Time `firestore:"submittedAt" json:"submittedAt"`
	ReviewedBy   string    `firestore:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewedAt   time.Time `firestore:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	RejectReason string    `firestore:"rejectReason,omitempty" json:"rejectReason,omitempty"`
}
