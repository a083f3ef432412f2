// Package escalation formats customer queries the assistant could not
// resolve into a block a human at the restaurant can act on.
package escalation

import (
	"fmt"
	"strings"
	"time"
)

// NotProvided replaces any customer field that is absent.
const NotProvided = "not provided"

// TimestampLayout is the layout of Message.Timestamp.
const TimestampLayout = "2006-01-02 15:04"

// Customer identifies who asked. All fields are optional.
type Customer struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Message is a formatted escalation ready for delivery.
type Message struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}

// Formatter builds escalation messages for one restaurant.
type Formatter struct {
	Restaurant string
}

// Format assembles the escalation block. It has no side effects.
func (f Formatter) Format(query string, c Customer, at time.Time) Message {
	ts := at.Format(TimestampLayout)
	subject := "UNRESOLVED QUERY"
	if f.Restaurant != "" {
		subject += " - " + f.Restaurant
	}

	var sb strings.Builder
	sb.WriteString(subject + "\n\n")
	sb.WriteString(fmt.Sprintf("Customer query: %s\n", strings.TrimSpace(query)))
	sb.WriteString(fmt.Sprintf("Name: %s\n", orNotProvided(c.Name)))
	sb.WriteString(fmt.Sprintf("WhatsApp: %s\n", orNotProvided(c.Phone)))
	sb.WriteString(fmt.Sprintf("Email: %s\n", orNotProvided(c.Email)))
	sb.WriteString(fmt.Sprintf("Date: %s\n\n", ts))
	sb.WriteString("Please reply to the customer with the requested information.")

	return Message{Subject: subject, Body: sb.String(), Timestamp: ts}
}

func orNotProvided(v string) string {
	if strings.TrimSpace(v) == "" {
		return NotProvided
	}
	return strings.TrimSpace(v)
}
