package notify

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"
)

// Notifier delivers push notifications. Callers fire and forget; delivery
// failures are logged, never returned.
type Notifier interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]string)
}

type FCMNotifier struct {
	Client           *messaging.Client
	ErrorLog         *log.Logger
	InfoLog          *log.Logger
	DeleteToken      func(ctx context.Context, token string) error
	SendInForeground bool
}

func (n *FCMNotifier) Send(ctx context.Context, tokens []string, title, body string, data map[string]string) {
	if len(tokens) == 0 {
		return
	}
	if n.SendInForeground {
		n.send(ctx, tokens, title, body, data)
		return
	}
	go n.send(context.Background(), tokens, title, body, data)
}

func (n *FCMNotifier) send(ctx context.Context, tokens []string, title, body string, data map[string]string) {
	for _, token := range tokens {
		message := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					ChannelID: "high_priority_channel",
				},
			},
			APNS: &messaging.APNSConfig{
				Headers: map[string]string{
					"apns-priority": "10",
				},
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Alert: &messaging.ApsAlert{
							Title: title,
							Body:  body,
						},
						Sound: "default",
					},
				},
			},
		}
		if _, err := n.Client.Send(ctx, message); err != nil {
			n.ErrorLog.Printf("fcm send to %s: %v", token, err)
			if messaging.IsRegistrationTokenNotRegistered(err) && n.DeleteToken != nil {
				if derr := n.DeleteToken(ctx, token); derr != nil {
					n.ErrorLog.Printf("fcm token cleanup: %v", derr)
				}
			}
			continue
		}
	}
}

// NopNotifier drops everything. Used when Firebase credentials are absent and
// in tests.
type NopNotifier struct{}

func (NopNotifier) Send(context.Context, []string, string, string, map[string]string) {}
