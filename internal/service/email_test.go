package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/models"
)

type recordingSender struct {
	sent []*gomail.Message
	err  error
}

func (r *recordingSender) DialAndSend(m ...*gomail.Message) error {
	r.sent = append(r.sent, m...)
	return r.err
}

func TestSendActivationEmail(t *testing.T) {
	sender := &recordingSender{}
	svc := &EmailService{sender: sender, from: "no-reply@example.com", fromName: "RecipeShare"}
	user := &models.User{Username: "<alice>", Email: "alice@example.com"}

	err := svc.SendActivationEmail(context.Background(), user, "http://localhost:8000/api/activate/MQ/tok")
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"alice@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Activate your RecipeShare account"}, msg.GetHeader("Subject"))

	var body bytes.Buffer
	_, err = msg.WriteTo(&body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "&lt;alice&gt;")
}

func TestSendEmailFailure(t *testing.T) {
	svc := &EmailService{sender: &recordingSender{err: errors.New("connection refused")}}

	err := svc.SendEmail(context.Background(), "a@example.com", "hi", "body")
	assert.ErrorContains(t, err, "failed to send email")
}

func TestSendEmailWithoutSMTPLogsOnly(t *testing.T) {
	svc := NewEmailService(&config.Config{EmailFrom: "no-reply@example.com"})

	assert.NoError(t, svc.SendEmail(context.Background(), "a@example.com", "hi", "body"))
}

func TestPasswordProblems(t *testing.T) {
	assert.Empty(t, PasswordProblems(strongPassword))
	assert.Equal(t, []string{"Password must contain at least one special character."}, PasswordProblems("NoSpecial123"))
	assert.Len(t, PasswordProblems(""), 5)

	// only ASCII letters count towards the case rules
	assert.Equal(t, []string{
		"Password must contain at least one uppercase letter.",
		"Password must contain at least one lowercase letter.",
	}, PasswordProblems("ÄÖÜäöüß1!"))
	// currency and other symbols are not punctuation
	assert.Equal(t, []string{"Password must contain at least one special character."}, PasswordProblems("Abcdefg1€"))
	assert.Empty(t, PasswordProblems("Abcdefg1~"))
	assert.Empty(t, PasswordProblems(`Abcdefg1\`))
}
