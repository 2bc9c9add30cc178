package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOTPMessage(t *testing.T) {
	msg := OTPMessage("a@example.com", "012345", 30*time.Minute)

	require.Equal(t, []string{"a@example.com"}, msg.To)
	require.Contains(t, msg.Text, "012345")
	require.Contains(t, msg.Text, "30 minutes")
	require.Contains(t, msg.HTML, "<strong>012345</strong>")
}

func TestPasswordResetMessageEscapesLink(t *testing.T) {
	msg := PasswordResetMessage("a@example.com", "https://app.example.com/reset-password/abc?x=<y>", time.Hour)

	require.Contains(t, msg.Text, "https://app.example.com/reset-password/abc")
	require.NotContains(t, msg.HTML, "<y>")
}

func TestLogDispatcherNeverFails(t *testing.T) {
	d := &LogDispatcher{log: zap.NewNop()}
	require.NoError(t, d.Send(context.Background(), MeetingCancelledMessage("a@example.com", "Sync", "2025-06-02", "09:00:00")))
}

func TestSendHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &GomailDispatcher{}
	require.ErrorIs(t, d.Send(ctx, Message{}), context.Canceled)
}
