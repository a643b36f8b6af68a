// Package queue defines message payloads exchanged over the message broker.
package queue

// ContactMessageEvent is published when a visitor submits the contact form.
// It carries everything the mail consumer needs so delivery never touches
// the database.
type ContactMessageEvent struct {
    Name       string `json:"name"`
    Email      string `json:"email"`
    Phone      string `json:"phone"`
    Message    string `json:"message"`
    ReceivedAt string `json:"received_at"`
}
