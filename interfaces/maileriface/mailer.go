package maileriface

// Mailer hides the delivery mechanism from callers building invitation and
// notification emails.
type Mailer interface {
	SendMail(to, from, subject, html, text string) error
}
