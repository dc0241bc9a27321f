package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"lms/config"
)

// SendEmail delivers an HTML email through Sendgrid. Failures are logged,
// not returned to the request path.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	cfg := config.AppConfig
	if cfg.SendgridAPIKey == "" {
		log.Printf("Sendgrid not configured, skipping email to %s (%s)", toEmail, subject)
		return nil
	}

	from := sgmail.NewEmail(cfg.EmailName, cfg.EmailSender)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", getEmailTemplate(subject, htmlBody))

	client := sendgrid.NewSendClient(cfg.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Sendgrid rejected email to %s: status %d body %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid responded %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the shared HTML layout
func getEmailTemplate(title, bodyContent string) string {
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
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LMS</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 LMS. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail is fired after registration.
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome aboard! Your account has been created.</p>
		<p>Browse the catalog and enroll in your first course to get started.</p>
	`, name)

	go SendEmail(email, name, "Welcome to LMS", body)
}

// SendEnrollmentEmail is fired when a checkout or direct enrollment succeeds.
func SendEnrollmentEmail(email, name, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully enrolled in:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>You can now access all the course content. Complete every lesson to finish the course.</p>
	`, name, courseTitle)

	go SendEmail(email, name, "Course Enrollment Confirmation", body)
}

// SendPaymentReceiptEmail is fired when a checkout completes.
func SendPaymentReceiptEmail(email, name, transactionCode string, amount float64) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We received your payment.</p>
		<div class="info-box">
			<strong>Transaction:</strong> %s<br>
			<strong>Amount:</strong> %.2f
		</div>
		<p>Your courses are available in your dashboard now.</p>
	`, name, transactionCode, amount)

	go SendEmail(email, name, "Payment Receipt", body)
}

// SendCompletionEmail is fired the first time an enrollment reaches 100%.
func SendCompletionEmail(email, name, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>Great work. Check your dashboard for your completion record.</p>
	`, name, courseTitle)

	go SendEmail(email, name, "Course Completed", body)
}
