package notification

import (
	"context"
	"fmt"

	professionalRepo "turnia/database/repository/professional"
	userRepo "turnia/database/repository/user"
	"turnia/utils"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
	SendProfessionalPushNotification(ctx context.Context, professionalID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users         userRepo.UserRepository
	Professionals professionalRepo.ProfessionalRepository
}

// SendUserPushNotification looks up a client's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPushNotification(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	if utils.FCMClient == nil {
		return nil
	}

	u, err := s.Users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendUserPushNotification: user %s has no FCM token", userID)
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = utils.RoleClient
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send FCM message: %w", err)
	}
	return nil
}

// SendProfessionalPushNotification looks up a professional's FCM token and
// sends a high-priority push; booking alerts must surface even when the app
// is backgrounded.
func (s *DefaultNotificationService) SendProfessionalPushNotification(
	ctx context.Context,
	professionalID, title, body string,
	data map[string]string,
) error {
	if utils.FCMClient == nil {
		return nil
	}

	p, err := s.Professionals.GetByID(professionalID)
	if err != nil {
		return fmt.Errorf("SendProfessionalPushNotification: could not find professional %s: %w", professionalID, err)
	}
	if p.FCMToken == "" {
		return fmt.Errorf("SendProfessionalPushNotification: professional %s has no FCM token", professionalID)
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = utils.RoleProfessional
	}

	msg := &messaging.Message{
		Token: p.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendProfessionalPushNotification: failed to send FCM message: %w", err)
	}
	return nil
}
