package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNewsletterSubscribed(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.FixedZone("MSK", 3*3600))
	ev := NewNewsletterSubscribed("a@b.ru", "footer", at)
	assert.Equal(t, "2024-03-01T09:30:00Z", ev.SubscribedAt)

	body, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.ru","source":"footer","subscribed_at":"2024-03-01T09:30:00Z"}`, string(body))
}

func TestFormatLine(t *testing.T) {
	line := FormatLine(NewsletterSubscribedEvent{Email: "a@b.ru", SubscribedAt: "2024-03-01T09:30:00Z"})
	assert.Equal(t, "[2024-03-01T09:30:00Z] Newsletter subscription | email=a@b.ru | source=site\n", line)
}

func TestHandleAppendsLines(t *testing.T) {
	c := NewConsumer("amqp://unused", nil)
	c.LogDir = filepath.Join(t.TempDir(), "logs")

	require.NoError(t, c.Handle([]byte(`{"email":"one@x.ru","subscribed_at":"t1"}`)))
	require.NoError(t, c.Handle([]byte(`{"email":"two@x.ru","subscribed_at":"t2"}`)))

	data, err := os.ReadFile(filepath.Join(c.LogDir, "newsletter.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "email=one@x.ru")
	assert.Contains(t, lines[1], "email=two@x.ru")
}

func TestHandleRejectsMalformed(t *testing.T) {
	c := NewConsumer("amqp://unused", nil)
	c.LogDir = t.TempDir()

	assert.Error(t, c.Handle([]byte(`not json`)))
	assert.Error(t, c.Handle([]byte(`{"email":"nobody"}`)))
	_, err := os.Stat(filepath.Join(c.LogDir, "newsletter.log"))
	assert.True(t, os.IsNotExist(err))
}
