package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var layout = template.Must(template.New("mail").Parse(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;color:#222">
<h2>{{.Title}}</h2>
{{range .Lines}}<p>{{.}}</p>{{end}}
{{if .Code}}<p style="font-size:28px;letter-spacing:6px"><strong>{{.Code}}</strong></p>{{end}}
{{if .Link}}<p><a href="{{.Link}}">{{.Link}}</a></p>{{end}}
</body></html>`))

type page struct {
	Title string
	Lines []string
	Code  string
	Link  string
}

func render(to, subject string, p page) Message {
	var html bytes.Buffer
	if err := layout.Execute(&html, p); err != nil {
		html.Reset()
	}
	var text bytes.Buffer
	for _, l := range p.Lines {
		text.WriteString(l + "\n")
	}
	if p.Code != "" {
		text.WriteString(p.Code + "\n")
	}
	if p.Link != "" {
		text.WriteString(p.Link + "\n")
	}
	return Message{To: []string{to}, Subject: subject, Text: text.String(), HTML: html.String()}
}

func OTPMessage(to, code string, ttl time.Duration) Message {
	return render(to, "Your login verification code", page{
		Title: "Login verification",
		Lines: []string{
			"Use the code below to finish signing in.",
			fmt.Sprintf("The code expires in %d minutes and can be used once.", int(ttl.Minutes())),
		},
		Code: code,
	})
}

func PasswordResetMessage(to, link string, ttl time.Duration) Message {
	return render(to, "Reset your password", page{
		Title: "Password reset",
		Lines: []string{
			"We received a request to reset your password.",
			fmt.Sprintf("The link below is valid for %d minutes. Ignore this email if you did not ask for it.", int(ttl.Minutes())),
		},
		Link: link,
	})
}

func PasswordChangedMessage(to string) Message {
	return render(to, "Your password was changed", page{
		Title: "Password changed",
		Lines: []string{"Your password has been reset successfully. Contact an administrator if this was not you."},
	})
}

func MeetingBookedMessage(to, title, room, date, start, end string) Message {
	return render(to, "Meeting booked: "+title, page{
		Title: "You have been invited to a meeting",
		Lines: []string{
			fmt.Sprintf("%s in %s", title, room),
			fmt.Sprintf("%s from %s to %s", date, start, end),
		},
	})
}

func MeetingCancelledMessage(to, title, date, start string) Message {
	return render(to, "Meeting cancelled: "+title, page{
		Title: "Meeting cancelled",
		Lines: []string{fmt.Sprintf("%s on %s at %s has been cancelled.", title, date, start)},
	})
}
