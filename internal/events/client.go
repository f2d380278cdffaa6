package events

import "bcms/backend/internal/models"

// Client is one live dashboard connection. It abstracts the transport so
// the hub can manage websocket clients and test doubles uniformly.
type Client interface {
	// GetUserID returns the authenticated user behind the connection.
	GetUserID() string

	// GetSendChannel returns the channel the hub pushes events into.
	GetSendChannel() chan<- models.Event

	// Run starts the connection's read and write pumps.
	Run()
	// Close shuts down the connection and its channels.
	Close()
}
