package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"vitalimes-backend/models"

	"go.uber.org/zap"
)

// Notifier is told about every successful catalog mutation. Its errors never
// reach the caller of the mutation.
type Notifier interface {
	Notify(ctx context.Context, event models.ProductEvent) error
}

type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, event models.ProductEvent) error {
	n.log.Info("product "+event.Action,
		zap.Int("product_id", event.ProductID),
		zap.String("title", event.Title),
		zap.String("category", event.Category),
	)
	return nil
}

type MailSender interface {
	SendBcc(recipients []string, subject, html string) error
}

type RecipientSource interface {
	NotificationEmails(ctx context.Context) ([]string, error)
}

// EmailNotifier BCCs admin and staff addresses with a short product summary.
type EmailNotifier struct {
	mailer      MailSender
	recipients  RecipientSource
	fallback    []string
	frontendURL string
	log         *zap.Logger
}

func NewEmailNotifier(mailer MailSender, recipients RecipientSource, fallback []string, frontendURL string, log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		mailer:      mailer,
		recipients:  recipients,
		fallback:    fallback,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log,
	}
}

var productMailTemplate = template.Must(template.New("product").Parse(`
<h2>{{.Heading}}</h2>
<p><strong>Title:</strong> {{.Event.Title}}</p>
<p><strong>Category:</strong> {{.Event.Category}}</p>
{{- if .Full}}
<p><strong>Status:</strong> {{.Event.Status}}</p>
<p><strong>Units:</strong> {{.Event.Units}}</p>
<p><a href="{{.Link}}">View Product</a></p>
{{- end}}
`))

func (n *EmailNotifier) Notify(ctx context.Context, event models.ProductEvent) error {
	to := n.collectRecipients(ctx)
	if len(to) == 0 {
		return nil
	}

	var heading, subject string
	switch event.Action {
	case models.EventCreated:
		heading, subject = "New Product Added", "New Product Added: "+event.Title
	case models.EventUpdated:
		heading, subject = "Product Updated", "Product Updated: "+event.Title
	case models.EventDeleted:
		heading, subject = "Product Deleted", "Product Deleted: "+event.Title
	default:
		return fmt.Errorf("unknown product event %q", event.Action)
	}

	var body bytes.Buffer
	err := productMailTemplate.Execute(&body, map[string]any{
		"Heading": heading,
		"Event":   event,
		"Full":    event.Action != models.EventDeleted,
		"Link":    fmt.Sprintf("%s/admin/products/%d", n.frontendURL, event.ProductID),
	})
	if err != nil {
		return fmt.Errorf("render product mail: %w", err)
	}

	return n.mailer.SendBcc(to, subject, body.String())
}

func (n *EmailNotifier) collectRecipients(ctx context.Context) []string {
	seen := map[string]bool{}
	out := []string{}
	add := func(addr string) {
		addr = strings.TrimSpace(addr)
		if addr == "" || seen[strings.ToLower(addr)] {
			return
		}
		seen[strings.ToLower(addr)] = true
		out = append(out, addr)
	}

	if n.recipients != nil {
		emails, err := n.recipients.NotificationEmails(ctx)
		if err != nil {
			n.log.Warn("admin recipient lookup failed", zap.Error(err))
		}
		for _, e := range emails {
			add(e)
		}
	}
	for _, e := range n.fallback {
		add(e)
	}
	return out
}
