package entity

import (
	"time"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type User struct {
	ID          string `json:"id" firestore:"id"`
	Email       string `json:"email" firestore:"email"`
	DisplayName string `json:"display_name" firestore:"displayName"`
	Role        string `json:"role" firestore:"role"`
	SchoolClass string `json:"school_class,omitempty" firestore:"schoolClass,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	Bio         string `json:"bio,omitempty" firestore:"bio,omitempty"`

	Counters     UserCounters `json:"counters" firestore:"counters"`
	EarnedBadges EarnedBadges `json:"earned_badges" firestore:"earnedBadges"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// UserProgress is the slice of the user document the approval workflow
// reads and writes inside a single transaction.
type UserProgress struct {
	Counters     UserCounters
	EarnedBadges EarnedBadges
}
