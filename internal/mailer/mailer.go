// internal/mailer/mailer.go

// Package mailer delivers itineraries to travelers over SES.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	awsclient "gotravel/internal/common/aws"
	"gotravel/internal/common/errors"
	"gotravel/internal/models"
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// EmailSender is the slice of the SES client the mailer needs.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type Mailer struct {
	sender EmailSender
	from   string
	logger Logger
}

// New builds a Mailer over a live SES client.
func New(ctx context.Context, region, from string, log Logger) (*Mailer, error) {
	client, err := awsclient.NewSESClient(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("ses client: %w", err)
	}
	return NewWithSender(client, from, log), nil
}

// NewWithSender wires an explicit sender, used by tests.
func NewWithSender(sender EmailSender, from string, log Logger) *Mailer {
	return &Mailer{
		sender: sender,
		from:   from,
		logger: log.With(map[string]interface{}{
			"component": "mailer",
		}),
	}
}

// SendItinerary emails the rendered plan to the traveler.
func (m *Mailer) SendItinerary(ctx context.Context, to string, it *models.Itinerary) error {
	if it == nil || it.DayCount() == 0 {
		return errors.NewValidationError("itinerary is required")
	}

	subject := fmt.Sprintf("Your %s itinerary, %s to %s", it.Destination, it.StartDate, it.EndDate)
	body := renderText(it)

	_, err := m.sender.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
			},
		},
	})
	if err != nil {
		m.logger.Error("itinerary email failed", map[string]interface{}{
			"to":    to,
			"error": err.Error(),
		})
		return errors.NewEmailSendFailedError(err)
	}

	m.logger.Info("itinerary email sent", map[string]interface{}{
		"to":          to,
		"destination": it.Destination,
	})
	return nil
}

func renderText(it *models.Itinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trip to %s\n%s to %s\n", it.Destination, it.StartDate, it.EndDate)
	if it.LocalCurrency != "" {
		fmt.Fprintf(&b, "Local currency: %s\n", it.LocalCurrency)
	}
	b.WriteString("\n")

	for _, day := range it.Days {
		fmt.Fprintf(&b, "Day %d", day.Day)
		if day.Date != "" {
			fmt.Fprintf(&b, " (%s)", day.Date)
		}
		if day.Title != "" {
			fmt.Fprintf(&b, ": %s", day.Title)
		}
		b.WriteString("\n")
		for _, activity := range day.Activities {
			fmt.Fprintf(&b, "  [%s] %s\n", activity.Time, activity.Description)
			if activity.Address != "" {
				fmt.Fprintf(&b, "      Address: %s\n", activity.Address)
			}
			if activity.CostDisplay != "" {
				fmt.Fprintf(&b, "      Cost: %s\n", activity.CostDisplay)
			}
		}
		b.WriteString("\n")
	}

	if it.DailyBudget != "" {
		fmt.Fprintf(&b, "Daily budget: %s\n\n", it.DailyBudget)
	}
	if len(it.SafetyInfo) > 0 {
		b.WriteString("Safety information:\n")
		for _, tip := range it.SafetyInfo {
			fmt.Fprintf(&b, "  - %s\n", tip)
		}
		b.WriteString("\n")
	}
	if len(it.WellnessInfo) > 0 {
		b.WriteString("Wellness tips:\n")
		for _, tip := range it.WellnessInfo {
			fmt.Fprintf(&b, "  - %s\n", tip)
		}
	}
	return b.String()
}
