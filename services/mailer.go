package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/abhinandan-jain01/nearmart/models"
)

var orderMailTemplate = template.Must(template.New("orderMail").Parse(`
<h2>Thanks for your order!</h2>
<p>Your order <b>{{.OrderNumber}}</b> has been placed.</p>
<table>
{{range .Items}}<tr><td>{{.Name}}</td><td>x{{.Quantity}}</td><td>₹{{printf "%.2f" .Price}}</td></tr>
{{end}}</table>
<p>Total: <b>₹{{printf "%.2f" .TotalAmount}}</b></p>
`))

// SMTPMailer sends transactional mail over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host, port, user, password string) *SMTPMailer {
	p, err := strconv.Atoi(port)
	if err != nil {
		p = 587
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, p, user, password),
		from:   user,
	}
}

func (m *SMTPMailer) SendOrderConfirmation(to string, order *models.Order) error {
	var body bytes.Buffer
	if err := orderMailTemplate.Execute(&body, order); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Order confirmation %s", order.OrderNumber))
	msg.SetBody("text/html", body.String())

	return m.dialer.DialAndSend(msg)
}
