package services

import (
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"

	"techpro-backoffice/config"
	"techpro-backoffice/logger"
	"techpro-backoffice/models"
)

// Mailer sends notification emails over SMTP. It is injected into handlers
// and the reminder scanner instead of living as package state, so tests can
// swap it for a fake.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
	log  *logger.Logger
}

// NewMailer builds a Mailer from the loaded application config
func NewMailer(log *logger.Logger) *Mailer {
	cfg := config.AppConfig

	port := 587
	if p, err := strconv.Atoi(cfg.SMTPPort); err == nil {
		port = p
	}

	from := cfg.EmailFrom
	if from == "" {
		from = cfg.SMTPUser
	}

	return &Mailer{
		host: cfg.SMTPHost,
		port: port,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: from,
		log:  log,
	}
}

// Enabled reports whether SMTP credentials are configured
func (m *Mailer) Enabled() bool {
	return m.user != "" && m.pass != ""
}

// Send delivers a single email. Attachment paths, when given, are attached
// to the message.
func (m *Mailer) Send(to, subject, body string, attachments ...string) error {
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}
	if !m.Enabled() {
		m.log.Warn("Email transporter not configured, skipping email to %s", to)
		return fmt.Errorf("smtp credentials not configured (set SMTP_USER and SMTP_PASS)")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	for _, a := range attachments {
		msg.Attach(a)
	}

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := d.DialAndSend(msg); err != nil {
		m.log.Error("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.Info("Email sent to %s", to)
	return nil
}

// SendBookingConfirmation notifies the student that a counselor was assigned
func (m *Mailer) SendBookingConfirmation(b models.Booking) error {
	body := fmt.Sprintf(`
<p>Hello %s,</p>
<p>Your counseling session for <strong>%s</strong> has been confirmed!</p>
<p>
Counselor: %s<br/>
Date: %s<br/>
Time: %s<br/>
Mode: %s
</p>
%s
<p>Thank you!<br/><strong>Tech-Pro Career Counseling Team</strong></p>`,
		b.Name, b.Course, b.AssignedCounselor, b.SelectedDate, b.SelectedTime, b.Mode, sessionAccessBlock(b))

	return m.Send(b.Email, "Counseling Session Confirmed", body)
}

// SendCounselorAssignment notifies the counselor about a new session
func (m *Mailer) SendCounselorAssignment(b models.Booking) error {
	body := fmt.Sprintf(`
<p>Hello %s,</p>
<p>You have been assigned a new counseling session.</p>
<p>
Student: %s<br/>
Email: %s<br/>
Phone: %s<br/>
Course: %s<br/>
Date: %s<br/>
Time: %s<br/>
Mode: %s
</p>
<p>Please contact the student to arrange the session details.</p>
<p>Thank you!<br/><strong>Tech-Pro Admin Team</strong></p>`,
		b.AssignedCounselor, b.Name, b.Email, b.Phone, b.Course, b.SelectedDate, b.SelectedTime, b.Mode)

	return m.Send(b.CounselorEmail, "New Counseling Session Assigned", body)
}

// SendStudentReminder delivers the 30-minute session reminder to the student
func (m *Mailer) SendStudentReminder(b models.Booking) error {
	body := fmt.Sprintf(`
<h2>Your session starts in 30 minutes!</h2>
<p>Dear %s,</p>
<p>This is a friendly reminder that your counseling session is starting soon.</p>
<p>
Date: %s<br/>
Time: %s<br/>
Counselor: %s
</p>
%s
<p>Please be ready to join on time. Looking forward to our session!</p>
<p>Best regards,<br/><strong>Tech-Pro Career Counseling Team</strong></p>`,
		b.Name, b.SelectedDate, b.SelectedTime, b.AssignedCounselor, sessionAccessBlock(b))

	return m.Send(b.Email, "Reminder: Counseling Session in 30 Minutes", body)
}

// SendCounselorReminder delivers the 30-minute session reminder to the
// assigned counselor
func (m *Mailer) SendCounselorReminder(b models.Booking) error {
	body := fmt.Sprintf(`
<h2>Your session starts in 30 minutes!</h2>
<p>Dear %s,</p>
<p>This is a friendly reminder about your upcoming counseling session.</p>
<p>
Student: %s<br/>
Email: %s<br/>
Phone: %s<br/>
Course: %s<br/>
Date: %s<br/>
Time: %s
</p>
%s
<p>Please be ready to start the session on time. Thank you!</p>
<p>Best regards,<br/><strong>Tech-Pro Admin Team</strong></p>`,
		b.AssignedCounselor, b.Name, b.Email, b.Phone, b.Course, b.SelectedDate, b.SelectedTime, sessionAccessBlock(b))

	return m.Send(b.CounselorEmail, "Reminder: Counseling Session in 30 Minutes", body)
}

// sessionAccessBlock renders the join link for online sessions or the
// location block for in-person ones.
func sessionAccessBlock(b models.Booking) string {
	if b.Mode == "online" && b.MeetingLink != "" {
		return fmt.Sprintf(`<p>Meeting link: <a href="%s">%s</a></p>`, b.MeetingLink, b.MeetingLink)
	}
	if b.LocationAddress != "" {
		return fmt.Sprintf(`<p>Location: %s</p>`, b.LocationAddress)
	}
	return ""
}

// SendVerificationEmail delivers the signup verification link
func (m *Mailer) SendVerificationEmail(email, firstName, token string) error {
	body := fmt.Sprintf(`
<p>Hi %s,</p>
<p>Welcome to Tech-Pro! Please verify your email address to activate your account.</p>
<p><a href="/api/users/verify/%s">Verify my email</a></p>
<p>If you did not create this account, you can ignore this email.</p>`,
		firstName, token)

	return m.Send(email, "Verify your Tech-Pro account", body)
}

// SendLoginSuccessEmail notifies an account about a successful login
func (m *Mailer) SendLoginSuccessEmail(email, name, role string) error {
	body := fmt.Sprintf(`
<p>Hi %s,</p>
<p>You have successfully signed in to Tech-Pro as %s.</p>
<p>If this wasn't you, please reset your password immediately.</p>`,
		name, role)

	return m.Send(email, "Login Successful - Tech-Pro", body)
}

// SendPasswordResetEmail delivers the password reset link
func (m *Mailer) SendPasswordResetEmail(email, firstName, token string) error {
	body := fmt.Sprintf(`
<p>Hi %s,</p>
<p>We received a request to reset your Tech-Pro password.</p>
<p><a href="/reset-password?token=%s">Reset my password</a></p>
<p>The link expires in one hour. If you did not request this, ignore this email.</p>`,
		firstName, token)

	return m.Send(email, "Reset your Tech-Pro password", body)
}

// SendPaymentReceipt emails the PDF receipt for a completed payment
func (m *Mailer) SendPaymentReceipt(email, name, receiptPath string) error {
	body := fmt.Sprintf(`
<p>Hi %s,</p>
<p>Thank you for your payment. Your receipt is attached.</p>
<p>Best regards,<br/><strong>Tech-Pro Admissions Team</strong></p>`,
		name)

	return m.Send(email, "Payment Receipt - Tech-Pro", body, receiptPath)
}
