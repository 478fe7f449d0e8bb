package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/jonathan/richat-staffing/internal/types"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// ErrNoRecipient is returned for events whose consultant has no email address
var ErrNoRecipient = errors.New("consultant has no email address")

// Sender delivers composed messages. *gomail.Dialer implements it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPConfig holds the outgoing mail server settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EmailNotifier emails the consultant when one of their matches is validated
type EmailNotifier struct {
	sender Sender
	from   string
	logger *zap.Logger
}

// NewEmailNotifier creates an EmailNotifier sending through an SMTP server
func NewEmailNotifier(cfg SMTPConfig, logger *zap.Logger) *EmailNotifier {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return NewEmailNotifierWithSender(d, cfg.From, logger)
}

// NewEmailNotifierWithSender creates an EmailNotifier on an arbitrary Sender
func NewEmailNotifierWithSender(sender Sender, from string, logger *zap.Logger) *EmailNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailNotifier{sender: sender, from: from, logger: logger}
}

var bodyTemplate = template.Must(template.New("validated").Parse(`<p>Bonjour {{.ConsultantName}},</p>
<p>Votre profil a été retenu pour l'appel d'offres <strong>{{.Tender}}</strong>
avec un score d'adéquation de <strong>{{printf "%.2f" .Score}}/100</strong>.</p>
<p>L'équipe Richat Partners vous contactera prochainement pour la suite du processus.</p>
<p>Cordialement,<br>Richat Partners</p>
`))

func tenderLabel(ev types.MatchEvent) string {
	if ev.TenderName != "" {
		return ev.TenderName
	}
	return ev.TenderID
}

func renderBody(ev types.MatchEvent) (string, error) {
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, struct {
		ConsultantName string
		Tender         string
		Score          float64
	}{ev.ConsultantName, tenderLabel(ev), ev.Score})
	if err != nil {
		return "", fmt.Errorf("failed to render email body: %w", err)
	}
	return buf.String(), nil
}

func (n *EmailNotifier) compose(ev types.MatchEvent) (*gomail.Message, error) {
	body, err := renderBody(ev)
	if err != nil {
		return nil, err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetAddressHeader("To", ev.Email, ev.ConsultantName)
	m.SetHeader("Subject", "Validation de votre candidature : "+tenderLabel(ev))
	m.SetBody("text/html", body)
	return m, nil
}

func (n *EmailNotifier) MatchValidated(ctx context.Context, ev types.MatchEvent) error {
	if ev.Email == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := n.compose(ev)
	if err != nil {
		return err
	}
	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send validation email to %s: %w", ev.Email, err)
	}
	n.logger.Info("validation email sent",
		zap.String("consultant_id", ev.ConsultantID),
		zap.String("tender_id", ev.TenderID),
	)
	return nil
}
