package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/pkordes/trip-planner/internal/domain"
)

// SMTPConfig configures Sender. For SendGrid, Username is the literal
// "apikey" and Password is the API key.
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	Timeout     time.Duration
	FromName    string
	FromAddress string
}

// Sender delivers messages through an authenticated SMTP relay.
// Each Send dials its own connection, so one Sender is safe for concurrent use.
type Sender struct {
	host string
	opts []gomail.Option
	from domain.Recipient
}

// NewSender validates cfg and returns a Sender. No connection is opened.
func NewSender(cfg SMTPConfig) (*Sender, error) {
	if cfg.Password == "" {
		return nil, errors.New("mail.NewSender: smtp password (api key) is required")
	}
	if cfg.Host == "" {
		return nil, errors.New("mail.NewSender: smtp host is required")
	}

	s := &Sender{
		host: cfg.Host,
		from: domain.Recipient{Name: cfg.FromName, Address: cfg.FromAddress},
		opts: []gomail.Option{
			gomail.WithPort(cfg.Port),
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
			gomail.WithTLSPortPolicy(gomail.TLSMandatory),
		},
	}
	if cfg.Timeout > 0 {
		s.opts = append(s.opts, gomail.WithTimeout(cfg.Timeout))
	}

	// Build one message up front so a malformed sender address fails at startup.
	if _, err := s.buildMsg(domain.Message{To: []domain.Recipient{{Address: cfg.FromAddress}}}); err != nil {
		return nil, fmt.Errorf("mail.NewSender: %w", err)
	}
	return s, nil
}

// Send delivers msg in a single attempt.
func (s *Sender) Send(ctx context.Context, msg domain.Message) error {
	m, err := s.buildMsg(msg)
	if err != nil {
		return fmt.Errorf("mail.Sender.Send: %w", err)
	}

	client, err := gomail.NewClient(s.host, s.opts...)
	if err != nil {
		return fmt.Errorf("mail.Sender.Send: client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mail.Sender.Send: %w", err)
	}
	return nil
}

func (s *Sender) buildMsg(msg domain.Message) (*gomail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, errors.New("message has no recipients")
	}

	m := gomail.NewMsg()
	if err := m.FromFormat(s.from.Name, s.from.Address); err != nil {
		return nil, fmt.Errorf("from %q: %w", s.from.Address, err)
	}
	for _, rcpt := range msg.To {
		if err := m.AddToFormat(rcpt.Name, rcpt.Address); err != nil {
			return nil, fmt.Errorf("to %q: %w", rcpt.Address, err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	return m, nil
}
