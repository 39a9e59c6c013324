// Package mail renders the trip planner's emails and hands them to an SMTP relay.
package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/links"
)

var (
	tripConfirmationTmpl = template.Must(template.New("trip_confirmation").Parse(`
<div style="font-family: sans-serif; font-size: 16px; line-height: 1.6;">
  <p>You asked to create a trip to <strong>{{.Destination}}</strong> from <strong>{{.StartsAt}}</strong> to <strong>{{.EndsAt}}</strong>.</p>
  <p></p>
  <p>To confirm your trip, follow the link below:</p>
  <p></p>
  <p>
    <a href="{{.Link}}">Confirm trip</a>
  </p>
  <p></p>
  <p>If you don't know what this email is about, just ignore it.</p>
</div>`))

	participantInvitationTmpl = template.Must(template.New("participant_invitation").Parse(`
<div style="font-family: sans-serif; font-size: 16px; line-height: 1.6;">
  <p>You have been invited to a trip to <strong>{{.Destination}}</strong> from <strong>{{.StartsAt}}</strong> to <strong>{{.EndsAt}}</strong>.</p>
  <p></p>
  <p>To confirm you are coming, follow the link below:</p>
  <p></p>
  <p>
    <a href="{{.Link}}">Confirm attendance</a>
  </p>
  <p></p>
  <p>If you don't know what this email is about, just ignore it.</p>
</div>`))
)

type templateData struct {
	Destination string
	StartsAt    string
	EndsAt      string
	Link        string
}

// Composer renders domain.Message values for the two workflow emails.
type Composer struct {
	dates DateFormatter
	links links.Builder
}

// NewComposer returns a Composer formatting dates with dates and building
// confirmation links with lb.
func NewComposer(dates DateFormatter, lb links.Builder) *Composer {
	return &Composer{dates: dates, links: lb}
}

// TripConfirmation is the email sent to the owner right after a trip is created.
func (c *Composer) TripConfirmation(trip domain.Trip, owner domain.Participant) (domain.Message, error) {
	html, err := render(tripConfirmationTmpl, c.data(trip, c.links.ConfirmTrip(trip.ID)))
	if err != nil {
		return domain.Message{}, fmt.Errorf("mail.Composer.TripConfirmation: %w", err)
	}
	return domain.Message{
		To:            []domain.Recipient{{Name: owner.Name, Address: owner.Email}},
		Subject:       fmt.Sprintf("Confirm your trip to %s on %s", trip.Destination, c.dates.Long(trip.StartsAt)),
		HTML:          html,
		ParticipantID: owner.ID,
	}, nil
}

// ParticipantInvitation is the email sent to one invitee once the trip is confirmed.
func (c *Composer) ParticipantInvitation(trip domain.Trip, p domain.Participant) (domain.Message, error) {
	html, err := render(participantInvitationTmpl, c.data(trip, c.links.ConfirmParticipant(p.ID)))
	if err != nil {
		return domain.Message{}, fmt.Errorf("mail.Composer.ParticipantInvitation: %w", err)
	}
	return domain.Message{
		To:            []domain.Recipient{{Name: p.Name, Address: p.Email}},
		Subject:       fmt.Sprintf("Confirm your attendance on the trip to %s on %s", trip.Destination, c.dates.Long(trip.StartsAt)),
		HTML:          html,
		ParticipantID: p.ID,
	}, nil
}

func (c *Composer) data(trip domain.Trip, link string) templateData {
	return templateData{
		Destination: trip.Destination,
		StartsAt:    c.dates.Long(trip.StartsAt),
		EndsAt:      c.dates.Long(trip.EndsAt),
		Link:        link,
	}
}

func render(t *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
