package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage(
		"do-not-reply@filesharing.com",
		"friend@example.com",
		"File Sharing Link",
		"<p>hello</p>",
	))

	head, body, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found, "message must separate headers from body with a blank line")

	assert.Contains(t, head, "From: do-not-reply@filesharing.com")
	assert.Contains(t, head, "To: friend@example.com")
	assert.Contains(t, head, "Subject: File Sharing Link")
	assert.Contains(t, head, "Content-Type: text/html")
	assert.Equal(t, "<p>hello</p>", body)
}
