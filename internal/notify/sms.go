package notify

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// SMSSender delivers short order notifications. Best-effort, same as mail.
type SMSSender interface {
	SendSMS(to, body string) error
}

type restSMSSender struct {
	client *resty.Client
	from   string
}

// NewRestSMSSender talks to a Twilio-style messaging endpoint configured via
// SMS_API_URL, SMS_ACCOUNT_SID, SMS_AUTH_TOKEN and SMS_FROM.
func NewRestSMSSender() SMSSender {
	client := resty.New().
		SetBaseURL(os.Getenv("SMS_API_URL")).
		SetBasicAuth(os.Getenv("SMS_ACCOUNT_SID"), os.Getenv("SMS_AUTH_TOKEN")).
		SetTimeout(15 * time.Second)

	return &restSMSSender{client: client, from: os.Getenv("SMS_FROM")}
}

func (s *restSMSSender) SendSMS(to, body string) error {
	resp, err := s.client.R().
		SetFormData(map[string]string{
			"To":   to,
			"From": s.from,
			"Body": body,
		}).
		Post("/Messages.json")
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode())
	}
	return nil
}
