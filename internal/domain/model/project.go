package model

import "strings"

// Action labels shown on project cards.
const (
	ActionShowCode    = "Show Code"
	ActionShowWebsite = "Show Website"
)

// Project is a portfolio entry as published by the portfolio API.
type Project struct {
	ID          RecordID `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	ActionLabel string   `json:"actionLabel"`
}

// ActionLabelFor picks the card action label for a project URL: source
// hosted on github.com is "Show Code", anything else is "Show Website".
func ActionLabelFor(url string) string {
	if strings.Contains(url, "github.com") {
		return ActionShowCode
	}
	return ActionShowWebsite
}
