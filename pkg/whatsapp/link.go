package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

// LinkBuilder produces wa.me deep links for a fixed destination.
type LinkBuilder struct {
	host        string
	destination string
}

// NewLinkBuilder validates the hand-off target and returns a builder.
func NewLinkBuilder(host, destination string) (*LinkBuilder, error) {
	host = strings.TrimSpace(host)
	destination = strings.TrimSpace(destination)
	if host == "" {
		return nil, fmt.Errorf("whatsapp host is required")
	}
	if destination == "" {
		return nil, fmt.Errorf("whatsapp destination is required")
	}
	return &LinkBuilder{host: host, destination: destination}, nil
}

// Destination returns the fixed destination identifier.
func (b *LinkBuilder) Destination() string {
	return b.destination
}

// Link percent-encodes the message into the deep-link template.
func (b *LinkBuilder) Link(message string) string {
	u := url.URL{
		Scheme:   "https",
		Host:     b.host,
		Path:     "/" + b.destination,
		RawQuery: "text=" + url.QueryEscape(message),
	}
	return u.String()
}
