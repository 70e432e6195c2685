// Package notify dispatches email notifications around the submission
// lifecycle. The console implementation serves dev and tests; SendGrid
// serves deployments.
package notify

import "context"

type Message struct {
	ToName  string
	ToAddr  string
	Subject string
	Text    string
}

type Service interface {
	Send(ctx context.Context, msg Message) error
}

// SubmissionReceived builds the confirmation mail sent after final submit.
func SubmissionReceived(name, addr string, year int, total float64) Message {
	return Message{
		ToName:  name,
		ToAddr:  addr,
		Subject: "Appraisal submission received",
		Text: "Your faculty performance appraisal for the academic year " +
			itoa(year) + " has been received.\n\nProvisional total: " +
			ftoa(total) + " / 100\n\nThe appraisal committee will review your submission.",
	}
}
