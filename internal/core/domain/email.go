package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EmailMessage - готовое к отправке письмо
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

// VerificationEmail - задание на письмо с подтверждением адреса
type VerificationEmail struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Link   string    `json:"link"`
}

// Render собирает текст письма
func (v VerificationEmail) Render() EmailMessage {
	name := strings.TrimSpace(v.Name)
	if name == "" {
		name = "there"
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome to Campus Stay! Please confirm your email address by opening the link below:\n\n%s\n\nIf you did not create an account, you can ignore this message.\n",
		name, v.Link,
	)
	return EmailMessage{
		To:      v.Email,
		Subject: "Verify your Campus Stay email",
		Body:    body,
	}
}

// VerificationLink добавляет токен к базовому адресу страницы подтверждения
func VerificationLink(baseURL, token string) string {
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + "token=" + token
}
