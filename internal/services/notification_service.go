package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"firebase.google.com/go/messaging"

	"lenslink/internal/models"
	"lenslink/internal/repositories"
)

// RealtimePusher delivers an event to a connected user, if any.
type RealtimePusher interface {
	PushToUser(userID int, event models.LeadEvent)
}

// NotificationService fans lead lifecycle events out to websocket sessions
// and FCM devices. Every delivery is best-effort: failures are logged and
// never propagated back to the request that triggered the event.
type NotificationService struct {
	FCM         *messaging.Client
	Tokens      *repositories.FCMTokenRepository
	PartnerRepo *repositories.PartnerRepository
	Realtime    RealtimePusher
	ErrorLog    *log.Logger
}

// LeadAssigned tells the assigned partners about a fresh lead.
func (s *NotificationService) LeadAssigned(ctx context.Context, inquiry models.Inquiry, partnerIDs []int) {
	event := models.LeadEvent{
		Type:      models.EventLeadAssigned,
		InquiryID: inquiry.ID,
		Category:  inquiry.Category,
		City:      inquiry.Location.City,
		Title:     "New lead",
		Body:      fmt.Sprintf("New %s inquiry in %s", inquiry.Category, inquiry.Location.City),
		CreatedAt: time.Now(),
	}
	users, err := s.PartnerRepo.UserIDsForPartners(ctx, partnerIDs)
	if err != nil {
		s.ErrorLog.Printf("notify: resolving partners for inquiry %d: %v", inquiry.ID, err)
		return
	}
	ids := make([]int, 0, len(users))
	for _, userID := range users {
		ids = append(ids, userID)
	}
	s.deliver(ctx, ids, event)
}

// LeadResponded tells the inquiry owner that a partner replied.
func (s *NotificationService) LeadResponded(ctx context.Context, inquiry models.Inquiry, partnerID int) {
	event := models.LeadEvent{
		Type:      models.EventLeadResponded,
		InquiryID: inquiry.ID,
		Category:  inquiry.Category,
		City:      inquiry.Location.City,
		Title:     "New response",
		Body:      fmt.Sprintf("A partner responded to your %s inquiry", inquiry.Category),
		CreatedAt: time.Now(),
	}
	s.deliver(ctx, []int{inquiry.ClientID}, event)
}

// LeadBooked tells the chosen partner they were booked.
func (s *NotificationService) LeadBooked(ctx context.Context, inquiry models.Inquiry, partnerID int) {
	event := models.LeadEvent{
		Type:      models.EventLeadBooked,
		InquiryID: inquiry.ID,
		Category:  inquiry.Category,
		City:      inquiry.Location.City,
		Title:     "You were booked",
		Body:      fmt.Sprintf("A client booked you for a %s inquiry in %s", inquiry.Category, inquiry.Location.City),
		CreatedAt: time.Now(),
	}
	users, err := s.PartnerRepo.UserIDsForPartners(ctx, []int{partnerID})
	if err != nil {
		s.ErrorLog.Printf("notify: resolving partner %d: %v", partnerID, err)
		return
	}
	userID, ok := users[partnerID]
	if !ok {
		return
	}
	s.deliver(ctx, []int{userID}, event)
}

func (s *NotificationService) deliver(ctx context.Context, userIDs []int, event models.LeadEvent) {
	if s.Realtime != nil {
		for _, userID := range userIDs {
			s.Realtime.PushToUser(userID, event)
		}
	}
	if s.FCM == nil || s.Tokens == nil {
		return
	}

	tokens, err := s.Tokens.TokensForUsers(ctx, userIDs)
	if err != nil {
		s.ErrorLog.Printf("notify: fetching tokens: %v", err)
		return
	}
	for _, t := range tokens {
		if err := s.sendPush(ctx, t.Token, event); err != nil {
			s.ErrorLog.Printf("notify: push to user %d: %v", t.UserID, err)
		}
	}
}

func (s *NotificationService) sendPush(ctx context.Context, token string, event models.LeadEvent) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: event.Title,
			Body:  event.Body,
		},
		Data: map[string]string{
			"type":       event.Type,
			"inquiry_id": fmt.Sprintf("%d", event.InquiryID),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "lead_updates",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: event.Title,
						Body:  event.Body,
					},
					Sound: "default",
				},
			},
		},
	}
	_, err := s.FCM.Send(ctx, message)
	return err
}

func (s *NotificationService) RegisterToken(ctx context.Context, token models.FCMToken) error {
	return s.Tokens.SaveToken(ctx, token)
}

func (s *NotificationService) RemoveToken(ctx context.Context, userID int) error {
	return s.Tokens.DeleteToken(ctx, userID)
}
