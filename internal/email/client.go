package email

import (
	"crypto/tls"
	"fmt"
	"strconv"
	"time"

	"github.com/wneessen/go-mail"
)

// Sender is implemented by anything that can deliver a notice. The
// scheduler depends on this, not on SMTP.
type Sender interface {
	SendFinalPaymentReminder(reminder PaymentReminder) error
}

// Client sends notification emails over SMTP.
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
}

func NewClient(host, portStr, user, password, fromName, fromEmail string) (*Client, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port: %w", err)
	}

	return &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

func (c *Client) SendEmail(to, subject, htmlBody string) error {
	m := mail.NewMsg()
	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{
			ServerName: c.host,
		}),
	)
	if err != nil {
		return fmt.Errorf("creating SMTP client (host=%s port=%d): %w", c.host, c.port, err)
	}

	if err := client.DialAndSend(m); err != nil {
		return fmt.Errorf("sending mail (host=%s port=%d): %w", c.host, c.port, err)
	}
	return nil
}

// PaymentReminder carries what the reminder email needs to say and who
// it goes to.
type PaymentReminder struct {
	UserName         string
	UserEmail        string
	ClientName       string
	ReferenceCode    string
	BookingID        uint64
	FinalPaymentDate time.Time
}

func (c *Client) SendFinalPaymentReminder(reminder PaymentReminder) error {
	subject := fmt.Sprintf("Final payment due %s for %s", reminder.FinalPaymentDate.Format("Jan 2"), reminder.ClientName)
	return c.SendEmail(reminder.UserEmail, subject, reminderHTML(reminder))
}

func reminderHTML(reminder PaymentReminder) string {
	reference := reminder.ReferenceCode
	if reference == "" {
		reference = fmt.Sprintf("#%d", reminder.BookingID)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Final Payment Reminder</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
	<table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f4f4f4; padding: 20px;">
		<tr>
			<td align="center">
				<table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px; overflow: hidden;">
					<tr>
						<td style="background-color: #667eea; padding: 30px 20px; text-align: center;">
							<h1 style="color: #ffffff; margin: 0; font-size: 24px;">Final Payment Reminder</h1>
						</td>
					</tr>
					<tr>
						<td style="padding: 30px;">
							<p style="color: #333;">Hi %s,</p>
							<p style="color: #333;">The final payment for one of your bookings is coming up:</p>
							<div style="background-color: #f8f9fa; border-left: 4px solid #667eea; padding: 20px; margin: 20px 0;">
								<table width="100%%" cellpadding="0" cellspacing="0">
									<tr>
										<td style="padding: 6px 0;"><strong>Client:</strong></td>
										<td style="padding: 6px 0; text-align: right;">%s</td>
									</tr>
									<tr>
										<td style="padding: 6px 0;"><strong>Booking:</strong></td>
										<td style="padding: 6px 0; text-align: right;">%s</td>
									</tr>
									<tr>
										<td style="padding: 6px 0;"><strong>Final payment due:</strong></td>
										<td style="padding: 6px 0; text-align: right;">%s</td>
									</tr>
								</table>
							</div>
							<p style="color: #999; font-size: 12px;">This is an automated reminder, please do not reply.</p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>
	`,
		reminder.UserName,
		reminder.ClientName,
		reference,
		reminder.FinalPaymentDate.Format("January 2, 2006"),
	)
}
