package smtp_adapter

import (
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSender_Validation(t *testing.T) {
	_, err := NewSender(Config{Port: 25, From: "noreply@campusstay.co.tz"})
	assert.Error(t, err)

	_, err = NewSender(Config{Host: "localhost", From: "noreply@campusstay.co.tz"})
	assert.Error(t, err)

	_, err = NewSender(Config{Host: "localhost", Port: 25, From: "not an address"})
	assert.Error(t, err)

	s, err := NewSender(Config{Host: "localhost", Port: 25, From: "Campus Stay <noreply@campusstay.co.tz>"})
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, s.cfg.Timeout)
}

func TestSender_Compose(t *testing.T) {
	s, err := NewSender(Config{Host: "localhost", Port: 25, From: "Campus Stay <noreply@campusstay.co.tz>"})
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC) }

	msg := domain.VerificationEmail{Email: "neema@example.com", Name: "Neema", Link: "https://x/verify?token=t"}.Render()
	raw := string(s.compose(mail.Address{Address: msg.To}, msg))

	headers, body, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found)
	assert.Contains(t, headers, `From: "Campus Stay" <noreply@campusstay.co.tz>`)
	assert.Contains(t, headers, "To: <neema@example.com>")
	assert.Contains(t, headers, "Subject: Verify your Campus Stay email")
	assert.Contains(t, headers, "Date: Fri, 02 May 2025 10:00:00 +0000")
	assert.Contains(t, body, "Hi Neema,\r\n")
	assert.Contains(t, body, "https://x/verify?token=t")
	assert.NotContains(t, strings.ReplaceAll(body, "\r\n", ""), "\n")
}

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "a\r\nb\r\nc\r\n", normalizeNewlines("a\nb\r\nc\r"))
}
