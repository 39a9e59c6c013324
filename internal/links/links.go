// Package links builds the absolute URLs embedded in emails and redirects.
package links

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Builder turns identifiers into confirmation links on the API and trip pages
// on the web front-end.
type Builder struct {
	api string
	web string
}

// New validates both base URLs. Each must be absolute (scheme and host).
func New(apiBaseURL, webBaseURL string) (Builder, error) {
	api, err := normalize(apiBaseURL)
	if err != nil {
		return Builder{}, fmt.Errorf("links.New: api base url: %w", err)
	}
	web, err := normalize(webBaseURL)
	if err != nil {
		return Builder{}, fmt.Errorf("links.New: web base url: %w", err)
	}
	return Builder{api: api, web: web}, nil
}

// ConfirmTrip is the link emailed to the owner after creation.
func (b Builder) ConfirmTrip(tripID uuid.UUID) string {
	return b.api + "/trips/" + tripID.String() + "/confirm"
}

// ConfirmParticipant is the link emailed to each invitee once the trip is confirmed.
func (b Builder) ConfirmParticipant(participantID uuid.UUID) string {
	return b.api + "/participants/" + participantID.String() + "/confirm"
}

// TripPage is the front-end page confirmations redirect to.
func (b Builder) TripPage(tripID uuid.UUID) string {
	return b.web + "/trips/" + tripID.String()
}

func normalize(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%q is not an absolute URL", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}
