package model

import "errors"

// ErrMissingFields indicates a review submission with one or more empty fields.
var ErrMissingFields = errors.New("all fields are required")

// Review is a client testimonial as published by the portfolio API.
type Review struct {
	ID      RecordID `json:"id"`
	Name    string   `json:"name"`
	Company string   `json:"company"`
	Review  string   `json:"review"`
}

// ReviewSubmission is the transient payload a visitor sends to publish a new
// review. Key is a shared secret passed through to the API unmodified.
type ReviewSubmission struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Review  string `json:"review"`
	Key     string `json:"key"`
}

// Missing returns the names of empty fields in form order.
func (s ReviewSubmission) Missing() []string {
	var missing []string
	if s.Company == "" {
		missing = append(missing, "company")
	}
	if s.Name == "" {
		missing = append(missing, "name")
	}
	if s.Review == "" {
		missing = append(missing, "review")
	}
	if s.Key == "" {
		missing = append(missing, "key")
	}
	return missing
}

// Validate returns ErrMissingFields when any field is empty.
func (s ReviewSubmission) Validate() error {
	if len(s.Missing()) > 0 {
		return ErrMissingFields
	}
	return nil
}
