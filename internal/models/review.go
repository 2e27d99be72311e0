package models

// Review is a per-service rating with an optional comment. UserName is
// denormalized at submission time so review listings survive user
// renames. No (user, service) uniqueness is enforced: a user may review
// the same service more than once over time.
type Review struct {
	Base
	ServiceID string `gorm:"type:uuid;not null;index" json:"service_id"`
	UserID    string `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName  string `gorm:"size:128;not null" json:"user_name"`
	Rating    int    `gorm:"not null" json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// RatingAggregate summarizes the reviews of one service. A service with
// zero reviews displays no rating badge, so Average is only meaningful
// when Count > 0.
type RatingAggregate struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
