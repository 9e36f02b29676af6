// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import "time"

// NewsletterQueue is the durable queue newsletter sign-ups are published to.
const NewsletterQueue = "newsletter.subscribed"

// NewsletterSubscribedEvent is published after a new subscriber row is stored.
type NewsletterSubscribedEvent struct {
	Email        string `json:"email"`
	Source       string `json:"source,omitempty"`
	SubscribedAt string `json:"subscribed_at"`
}

// NewNewsletterSubscribed stamps the event with at in RFC 3339 UTC.
func NewNewsletterSubscribed(email, source string, at time.Time) NewsletterSubscribedEvent {
	return NewsletterSubscribedEvent{
		Email:        email,
		Source:       source,
		SubscribedAt: at.UTC().Format(time.RFC3339),
	}
}
