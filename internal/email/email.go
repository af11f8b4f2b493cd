package email

import (
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
}

// Sender delivers transactional mail. Sends are fire-and-forget; a delivery
// failure is logged but never fails the request that triggered it.
type Sender interface {
	Send(msg Message)
}

// NewSender returns the SendGrid sender when an API key is configured and a
// console sender otherwise, so local development works without credentials.
func NewSender(apiKey, fromName, fromEmail string) Sender {
	if apiKey == "" {
		return &consoleSender{}
	}
	return &sendgridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail(fromName, fromEmail),
	}
}

type sendgridSender struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func (s *sendgridSender) Send(msg Message) {
	go func() {
		to := sgmail.NewEmail(msg.ToName, msg.To)
		m := sgmail.NewSingleEmail(s.from, msg.Subject, to, msg.Text, "")

		resp, err := s.client.Send(m)
		if err != nil {
			log.Println("[EMAIL] [ERROR] sendgrid send failed:", err)
			return
		}
		if resp.StatusCode >= 400 {
			log.Printf("[EMAIL] [ERROR] sendgrid send returned %d: %s", resp.StatusCode, resp.Body)
			return
		}
		log.Println("[EMAIL] [INFO] sent:", msg.Subject, "->", msg.To)
	}()
}

type consoleSender struct{}

func (s *consoleSender) Send(msg Message) {
	log.Printf("[EMAIL] [INFO] (console) to=%s subject=%q\n%s", msg.To, msg.Subject, msg.Text)
}
