package models

import (
	"fmt"
	"time"
)

// BoxStatus tracks a box through order handoff
type BoxStatus string

const (
	BoxStatusCreated   BoxStatus = "created"
	BoxStatusOrdered   BoxStatus = "ordered"
	BoxStatusCompleted BoxStatus = "completed"
	BoxStatusCancelled BoxStatus = "cancelled"
)

var boxTransitions = map[BoxStatus][]BoxStatus{
	BoxStatusCreated: {BoxStatusOrdered, BoxStatusCancelled},
	BoxStatusOrdered: {BoxStatusCompleted, BoxStatusCancelled},
}

// ParseBoxStatus validates a status received from the outside
func ParseBoxStatus(s string) (BoxStatus, error) {
	switch st := BoxStatus(s); st {
	case BoxStatusCreated, BoxStatusOrdered, BoxStatusCompleted, BoxStatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown box status %q", s)
}

// CanTransition reports whether a box may move from s to next
func (s BoxStatus) CanTransition(next BoxStatus) bool {
	return contains(boxTransitions[s], next)
}

// Box is the persisted outcome of one recommendation cycle
type Box struct {
	ID             string            `bson:"_id" json:"id"`
	UserID         string            `bson:"user_id" json:"userId"`
	CreatedAt      time.Time         `bson:"created_at" json:"createdAt"`
	Profile        DiagnosticProfile `bson:"profile" json:"data"`
	Recommendation Recommendation    `bson:"recommendation" json:"recommendation"`
	Products       []CatalogItem     `bson:"products" json:"products"`
	TotalPrice     int64             `bson:"total_price" json:"totalPrice"`
	Status         BoxStatus         `bson:"status" json:"status"`
}
