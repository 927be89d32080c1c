// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/dalemusser/stratapapers/internal/app/system/htmlsanitize"
)

// ContactAdminEmailData contains the data for the operator notification sent
// for each contact form inquiry.
type ContactAdminEmailData struct {
	SiteName        string
	SubmissionID    string
	FullName        string
	Country         string
	Email           string
	Phone           string
	TutoringDetails string
	HourlyBudget    string
	SubmittedAt     time.Time
}

// ContactAdminEmail generates both plain text and HTML versions of the
// operator notification.
func ContactAdminEmail(data ContactAdminEmailData) (textBody, htmlBody string) {
	var b strings.Builder
	b.WriteString("A new inquiry was submitted through the " + data.SiteName + " contact form.\n\n")
	b.WriteString("Name: " + data.FullName + "\n")
	b.WriteString("Country: " + data.Country + "\n")
	b.WriteString("Email: " + data.Email + "\n")
	b.WriteString("Phone: " + data.Phone + "\n")
	b.WriteString("Hourly budget: " + data.HourlyBudget + "\n")
	b.WriteString("Submitted: " + submittedLabel(data.SubmittedAt) + "\n")
	if data.SubmissionID != "" {
		b.WriteString("Reference: " + data.SubmissionID + "\n")
	}
	b.WriteString("\nTutoring details:\n" + data.TutoringDetails + "\n\n")
	b.WriteString("Reply to this email to respond to " + data.FullName + " directly.")
	textBody = b.String()

	var buf bytes.Buffer
	contactAdminHTMLTmpl.Execute(&buf, struct {
		ContactAdminEmailData
		Submitted string
		Details   []string
	}{data, submittedLabel(data.SubmittedAt), detailLines(data.TutoringDetails)})
	htmlBody = buf.String()

	return textBody, htmlBody
}

// ContactAutoReplyEmailData contains the data for the acknowledgement sent
// back to the person who submitted the form. Body is CMS rich text.
type ContactAutoReplyEmailData struct {
	SiteName string
	FullName string
	Body     string
}

// ContactAutoReplyEmail generates both plain text and HTML versions of the
// auto-reply. The CMS body is sanitized for HTML and stripped for text.
func ContactAutoReplyEmail(data ContactAutoReplyEmailData) (textBody, htmlBody string) {
	greeting := "Hello,"
	if name := strings.TrimSpace(data.FullName); name != "" {
		greeting = "Hi " + name + ","
	}

	textBody = greeting + "\n\n" +
		htmlsanitize.StripTags(data.Body) + "\n\n" +
		"Kind regards,\n" + data.SiteName

	var buf bytes.Buffer
	contactAutoReplyHTMLTmpl.Execute(&buf, struct {
		SiteName string
		Greeting string
		Body     template.HTML
	}{data.SiteName, greeting, htmlsanitize.PrepareForDisplay(data.Body)})
	htmlBody = buf.String()

	return textBody, htmlBody
}

func submittedLabel(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format("2 Jan 2006 15:04") + " UTC"
}

func detailLines(s string) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, strings.TrimRight(l, " \t"))
	}
	return out
}

// ContactAdminSubject appends the submitter's name to the admin subject so
// inquiries from different people do not thread together.
func ContactAdminSubject(subject, fullName string) string {
	if name := strings.TrimSpace(fullName); name != "" {
		return subject + " from " + name
	}
	return subject
}

var contactAdminHTMLTmpl = template.Must(template.New("contact_admin").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>New Inquiry</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f4f4f5;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 560px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.SiteName}}</h1>
            </td>
          </tr>
          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #18181b;">New Contact Form Submission</h2>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="font-size: 14px; line-height: 1.6; color: #3f3f46;">
                <tr><td style="padding: 4px 0; width: 140px; color: #71717a;">Name</td><td style="padding: 4px 0;">{{.FullName}}</td></tr>
                <tr><td style="padding: 4px 0; color: #71717a;">Country</td><td style="padding: 4px 0;">{{.Country}}</td></tr>
                <tr><td style="padding: 4px 0; color: #71717a;">Email</td><td style="padding: 4px 0;"><a href="mailto:{{.Email}}" style="color: #4f46e5;">{{.Email}}</a></td></tr>
                <tr><td style="padding: 4px 0; color: #71717a;">Phone</td><td style="padding: 4px 0;">{{.Phone}}</td></tr>
                <tr><td style="padding: 4px 0; color: #71717a;">Hourly budget</td><td style="padding: 4px 0;">{{.HourlyBudget}}</td></tr>
                <tr><td style="padding: 4px 0; color: #71717a;">Submitted</td><td style="padding: 4px 0;">{{.Submitted}}</td></tr>
              </table>
              <h3 style="margin: 24px 0 8px 0; font-size: 15px; font-weight: 600; color: #18181b;">Tutoring details</h3>
              <p style="margin: 0; font-size: 14px; line-height: 1.6; color: #52525b;">
                {{range $i, $l := .Details}}{{if $i}}<br>{{end}}{{$l}}{{end}}
              </p>
            </td>
          </tr>
          <!-- Footer -->
          <tr>
            <td style="padding: 24px 32px; background-color: #fafafa; border-top: 1px solid #e4e4e7; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #a1a1aa; text-align: center;">
                Reply to this email to respond to {{.FullName}} directly.{{if .SubmissionID}} Reference {{.SubmissionID}}.{{end}}
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

var contactAutoReplyHTMLTmpl = template.Must(template.New("contact_auto_reply").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.SiteName}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f4f4f5;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.SiteName}}</h1>
            </td>
          </tr>
          <!-- Content -->
          <tr>
            <td style="padding: 32px; font-size: 15px; line-height: 1.6; color: #52525b;">
              <p style="margin: 0 0 16px 0;">{{.Greeting}}</p>
              {{.Body}}
              <p style="margin: 24px 0 0 0;">Kind regards,<br>{{.SiteName}}</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))
