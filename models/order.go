package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompleteContact is returned when a required order form field is empty
var ErrIncompleteContact = errors.New("order contact is incomplete")

// OrderContact holds the details the customer types into the order form
type OrderContact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Comment string `json:"comment,omitempty"`
}

// Validate mirrors the required inputs of the order form
func (c OrderContact) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(c.Address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteContact, strings.Join(missing, ", "))
	}
	return nil
}
