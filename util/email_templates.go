package util

import "fmt"

// Golang html/template pkg can be used later for parsing & creating complex email templates.

const (
	PartnerInvitationSubject = "You're invited to the NXTKonekt Partner Program"
	InviteHeading            = "Welcome to NXTKonekt!"
	InviteLine1              = "You have been invited to join the NXTKonekt partner program. To create your account, please follow this link:"
	InviteLine2              = "The invitation expires in 7 days. If you were not expecting this email, you can safely ignore it."
	EmailFooter1             = "Regards,"
	EmailFooter2             = "NXTKonekt Team"
)

func CreateInvitationTemplate(link string) (subject, text, html string) {
	subject = PartnerInvitationSubject
	text = fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s\n\n%s\n%s", InviteHeading, InviteLine1, link, InviteLine2, EmailFooter1, EmailFooter2)
	html = fmt.Sprintf("%s<br><br>%s<br><br><a href=\"%s\">%s</a><br><br>%s<br><br>%s<br>%s", InviteHeading, InviteLine1, link, link, InviteLine2, EmailFooter1, EmailFooter2)
	return
}

const (
	PartnerApprovedSubject = "Your NXTKonekt partner account is approved"
	ApprovedHeading        = "You're all set!"
	ApprovedLine1          = "Your partner account has been approved. You can now create site assessments and generate installation quotes:"
	ApprovedLine2          = "Please feel free to contact us by replying to this email if you face any issues."
)

func CreatePartnerApprovedTemplate(link string) (subject, text, html string) {
	subject = PartnerApprovedSubject
	text = fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s\n\n%s\n%s", ApprovedHeading, ApprovedLine1, link, ApprovedLine2, EmailFooter1, EmailFooter2)
	html = fmt.Sprintf("%s<br><br>%s<br><br><a href=\"%s\">%s</a><br><br>%s<br><br>%s<br>%s", ApprovedHeading, ApprovedLine1, link, link, ApprovedLine2, EmailFooter1, EmailFooter2)
	return
}

const (
	QuoteReadySubject = "Your NXTKonekt installation quote is ready"
	QuoteHeading      = "Your installation quote is ready."
	QuoteLine1        = "Please review your quote and approve or decline it at the link below:"
	QuoteLine2        = "The quote total includes a refundable labor hold for unforeseen on-site work."
)

func CreateQuoteReadyTemplate(link string) (subject, text, html string) {
	subject = QuoteReadySubject
	text = fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s\n\n%s\n%s", QuoteHeading, QuoteLine1, link, QuoteLine2, EmailFooter1, EmailFooter2)
	html = fmt.Sprintf("%s<br><br>%s<br><br><a href=\"%s\">%s</a><br><br>%s<br><br>%s<br>%s", QuoteHeading, QuoteLine1, link, link, QuoteLine2, EmailFooter1, EmailFooter2)
	return
}
