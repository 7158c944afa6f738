package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"labcatalog-api/internal/event"
)

// EmailService delivers quote notifications through the transactional
// email provider's REST API.
type EmailService struct {
	apiURL string
	apiKey string
	from   string
	to     string
	client *http.Client
}

func NewEmailService(apiURL string, apiKey string, from string, to string) *EmailService {
	return &EmailService{
		apiURL: apiURL,
		apiKey: apiKey,
		from:   from,
		to:     to,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// StartDispatcher consumes quote.created events until the context is
// cancelled. Delivery failures are logged and never surface to the
// request that produced the event.
func (s *EmailService) StartDispatcher(ctx context.Context, bus event.Bus) {
	events, unsubscribe := bus.Subscribe()

	go func() {
		defer unsubscribe()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, open := <-events:
				if !open {
					return
				}
				if ev.Type != event.TypeQuoteCreated {
					continue
				}

				payload, ok := ev.Payload.(event.QuoteCreatedPayload)
				if !ok {
					slog.Error("quote.created event carries unexpected payload", "event_id", ev.ID)
					continue
				}

				if err := s.SendQuoteNotification(ctx, payload); err != nil {
					slog.Error("send quote notification", "quote_id", payload.QuoteID, "error", err.Error())
					continue
				}

				slog.Info("quote notification sent", "quote_id", payload.QuoteID)
			}
		}
	}()
}

func (s *EmailService) SendQuoteNotification(ctx context.Context, payload event.QuoteCreatedPayload) error {
	body, err := json.Marshal(map[string]any{
		"from":    s.from,
		"to":      []string{s.to},
		"subject": fmt.Sprintf("New quote request from %s", payload.CompanyName),
		"html":    renderQuoteNotification(payload),
	})
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}

func renderQuoteNotification(payload event.QuoteCreatedPayload) string {
	phone := "not provided"
	if payload.Phone != nil && *payload.Phone != "" {
		phone = *payload.Phone
	}

	message := "none"
	if payload.Message != nil && *payload.Message != "" {
		message = *payload.Message
	}

	products := "not resolved"
	if len(payload.ProductNames) > 0 {
		products = strings.Join(payload.ProductNames, ", ")
	}

	var sb strings.Builder
	sb.WriteString("<h2>New quote request</h2><table>")
	writeRow(&sb, "Company", payload.CompanyName)
	writeRow(&sb, "Tax ID", payload.CompanyTaxID)
	writeRow(&sb, "Contact", payload.ContactName)
	writeRow(&sb, "Email", payload.Email)
	writeRow(&sb, "Phone", phone)
	writeRow(&sb, "Products", products)
	writeRow(&sb, "Message", message)
	sb.WriteString("</table>")

	return sb.String()
}

func writeRow(sb *strings.Builder, label string, value string) {
	fmt.Fprintf(sb, "<tr><td>%s</td><td>%s</td></tr>", label, html.EscapeString(value))
}
