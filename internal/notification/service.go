package notification

import (
	"context"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

const ListLimit = 50

var SendableTypes = []string{
	models.NotificationPromotion,
	models.NotificationDiscount,
	models.NotificationStatusUpdate,
}

// Deliverer pushes already persisted notifications to an external
// channel. Delivery is best effort.
type Deliverer interface {
	Deliver(ctx context.Context, notes ...models.Notification)
}

// Publisher persists and delivers notifications for a set of users.
type Publisher interface {
	Publish(ctx context.Context, userIDs []uint, kind, title, message string) ([]models.Notification, error)
}

var (
	_ Deliverer = (*Service)(nil)
	_ Publisher = (*Service)(nil)
)

type Service struct {
	db     *gorm.DB
	sender Sender
	log    *logrus.Logger
}

func NewService(db *gorm.DB, sender Sender, log *logrus.Logger) *Service {
	if sender == nil {
		sender = NoopSender{}
	}
	return &Service{db: db, sender: sender, log: log}
}

// Publish persists one notification per user and then delivers them.
func (s *Service) Publish(
	ctx context.Context,
	userIDs []uint,
	kind string,
	title string,
	message string,
) ([]models.Notification, error) {

	if len(userIDs) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	notes := make([]models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		notes = append(notes, models.Notification{
			UserID:  id,
			Type:    kind,
			Title:   title,
			Message: message,
			SentAt:  now,
		})
	}

	if err := s.db.WithContext(ctx).Create(&notes).Error; err != nil {
		return nil, err
	}

	s.Deliver(ctx, notes...)
	return notes, nil
}

func ValidateSendType(kind string) error {
	if !slices.Contains(SendableTypes, kind) {
		return httperr.Validation("invalid_notification_type", "type must be promotion, discount or status_update.")
	}
	return nil
}

func (s *Service) Deliver(ctx context.Context, notes ...models.Notification) {
	if _, noop := s.sender.(NoopSender); noop || len(notes) == 0 {
		return
	}

	// detach from the request; delivery may outlive it
	ctx = context.WithoutCancel(ctx)
	go func() {
		userIDs := make([]uint, 0, len(notes))
		for _, n := range notes {
			userIDs = append(userIDs, n.UserID)
		}

		var users []models.User
		if err := s.db.WithContext(ctx).
			Select("id", "phone").
			Where("id IN ?", userIDs).
			Find(&users).Error; err != nil {
			s.log.WithError(err).Warn("notification delivery: load recipients")
			return
		}

		phones := make(map[uint]string, len(users))
		for _, u := range users {
			phones[u.ID] = u.Phone
		}

		for _, n := range notes {
			phone := phones[n.UserID]
			if phone == "" {
				continue
			}
			if err := s.sender.Send(ctx, phone, n.Message); err != nil {
				s.log.WithError(err).
					WithFields(logrus.Fields{"user_id": n.UserID, "notification_id": n.ID}).
					Warn("notification delivery failed")
			}
		}
	}()
}

// ======================================================
// INBOX
// ======================================================

type Inbox struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}

func (s *Service) Inbox(ctx context.Context, userID uint) (*Inbox, error) {
	var notes []models.Notification
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sent_at DESC, id DESC").
		Limit(ListLimit).
		Find(&notes).Error; err != nil {
		return nil, err
	}

	var unread int64
	if err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread).Error; err != nil {
		return nil, err
	}

	if notes == nil {
		notes = []models.Notification{}
	}
	return &Inbox{Notifications: notes, UnreadCount: unread}, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Service) MarkRead(ctx context.Context, n *models.Notification) error {
	n.IsRead = true
	return s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", n.ID).
		Update("is_read", true).Error
}
