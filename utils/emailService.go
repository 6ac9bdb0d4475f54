package utils

import (
	"examportal/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through SendGrid. Skipped silently when no
// API key is configured.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendGridApiKey == "" {
		log.Printf("SendGrid not configured, skipping email to %s", toEmail)
		return nil
	}

	from := mail.NewEmail("Exam Portal", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps content in the portal's standard layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.content h2 { color: #1A237E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.score-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #3949AB; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>EXAM PORTAL</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Exam Portal. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// resultEmailBody builds the HTML content of a graded-result email
func resultEmailBody(toName, examTitle string, score, total, percentage int, passed bool) string {
	verdict := "you did not reach the passing score this time"
	if passed {
		verdict = "you passed"
	}

	return fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your submission for <strong>%s</strong> has been graded: %s.</p>
		<div class="score-box">
			<p>Score: <strong>%d / %d</strong></p>
			<p>Percentage: <strong>%d%%</strong></p>
		</div>
		<p>You can review the full per-question breakdown in your results page.</p>
	`, toName, examTitle, verdict, score, total, percentage)
}

// SendResultEmail emails a graded result summary to the user
func SendResultEmail(toName, toEmail, examTitle string, score, total, percentage int, passed bool) {
	body := resultEmailBody(toName, examTitle, score, total, percentage, passed)

	if err := SendEmail(toName, toEmail, "Your exam result: "+examTitle, getEmailTemplate("Exam Graded", body)); err != nil {
		log.Printf("Failed to send result email to %s: %v", toEmail, err)
	}
}
