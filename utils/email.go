package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// sendMail sends an HTML email using the configured SMTP account
func sendMail(to, subject, body string) error {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendPaymentApprovedEmail notifies the customer that a payment cleared
func SendPaymentApprovedEmail(to string, orderID uint, amount float64) error {
	subject := fmt.Sprintf("Payment confirmed for order #%d", orderID)
	body := fmt.Sprintf(`
		<h2>Payment confirmed</h2>
		<p>Your payment of ₹%.2f for order #%d has been verified.</p>
		<p>You can track your project's progress from your dashboard.</p>
	`, amount, orderID)
	return sendMail(to, subject, body)
}

// SendPaymentRejectedEmail notifies the customer that a payment was rejected
func SendPaymentRejectedEmail(to string, orderID uint, reason string) error {
	subject := fmt.Sprintf("Payment issue with order #%d", orderID)
	body := fmt.Sprintf(`
		<h2>Payment could not be verified</h2>
		<p>Your payment for order #%d was rejected: %s</p>
		<p>Any wallet amount has been refunded. To continue, please place a new order.</p>
	`, orderID, reason)
	return sendMail(to, subject, body)
}
