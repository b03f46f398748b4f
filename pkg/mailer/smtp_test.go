package mailer

import (
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"employee-list/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	raw := buildMessage("Directory <no-reply@example.com>", Message{
		To:      "anna.muster@example.com",
		Subject: "Ihr neuer PIN",
		Body:    "Hallo Anna,\nIhr PIN lautet: 123456",
	}, now)

	assert.True(t, strings.HasPrefix(raw, "From: Directory <no-reply@example.com>\r\n"))
	assert.Contains(t, raw, "To: anna.muster@example.com\r\n")
	assert.Contains(t, raw, "Subject: Ihr neuer PIN\r\n")
	assert.Contains(t, raw, "Date: Mon, 06 May 2024 07:08:09 +0000\r\n")
	assert.Contains(t, raw, "\r\n\r\nHallo Anna,\r\nIhr PIN lautet: 123456")
}

func TestBuildMessageEncodesNonASCIISubject(t *testing.T) {
	raw := buildMessage("a@example.com", Message{To: "b@example.com", Subject: "Grüße"}, time.Now())
	assert.Contains(t, raw, "Subject: =?utf-8?q?Gr=C3=BC=C3=9Fe?=")
}

func TestParseAddress(t *testing.T) {
	assert.Equal(t, "no-reply@example.com", parseAddress("Directory <no-reply@example.com>"))
	assert.Equal(t, "no-reply@example.com", parseAddress(" no-reply@example.com "))
}

func TestSendRejectsEmptyRecipient(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "localhost", Port: 25})
	assert.Error(t, m.Send(context.Background(), Message{Subject: "x"}))
}

func TestSendReportsUnreachableServer(t *testing.T) {
	// grab a free port and close it so nothing is listening
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	m := NewSMTPMailer(config.SMTPConfig{Host: "127.0.0.1", Port: port, From: "a@example.com"})
	err = m.Send(context.Background(), Message{To: "b@example.com", Subject: "x", Body: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to 127.0.0.1:"+strconv.Itoa(port))
}
