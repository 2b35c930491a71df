// Package members — service.go содержит бизнес-логику управления игроками.
// Сервис координирует регистрацию, обновление профиля и выбор часового пояса.
package members

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"pixelferma.ru/idle-bot/internal/config"
)

// Service управляет игроками.
type Service struct {
	repo *Repository
	cfg  *config.Config
}

// NewService создаёт новый сервис игроков.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// EnsureMember гарантирует, что игрок есть в базе.
// Если нет — регистрирует с дефолтным часовым поясом.
// Вызывается на каждое входящее сообщение.
func (s *Service) EnsureMember(ctx context.Context, userID int64, username, firstName, lastName string) error {
	exists, err := s.repo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	member := &Member{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Timezone:  s.cfg.AppTimezone,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return fmt.Errorf("ошибка регистрации игрока: %w", err)
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"username": username,
	}).Info("Новый игрок зарегистрирован")
	return nil
}

// UpdateProfile обновляет имя и username вернувшегося игрока.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, username, firstName, lastName string) error {
	return s.repo.UpdateInfo(ctx, userID, UpdateInfo{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
	})
}

// GetByUserID возвращает игрока по его Telegram user ID.
func (s *Service) GetByUserID(ctx context.Context, userID int64) (*Member, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// GetByUsername возвращает игрока по @username (без @).
func (s *Service) GetByUsername(ctx context.Context, username string) (*Member, error) {
	return s.repo.GetByUsername(ctx, username)
}

// IsMember проверяет, зарегистрирован ли игрок.
func (s *Service) IsMember(ctx context.Context, userID int64) (bool, error) {
	return s.repo.Exists(ctx, userID)
}

// SetTimezone проверяет и сохраняет часовой пояс игрока.
// Принимаются только валидные IANA-имена ("Europe/Moscow", "Asia/Novosibirsk").
func (s *Service) SetTimezone(ctx context.Context, userID int64, tz string) error {
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("неизвестный часовой пояс %q: %w", tz, err)
	}
	return s.repo.SetTimezone(ctx, userID, tz)
}

// Location возвращает часовой пояс игрока.
// Если игрок не найден или пояс кривой — дефолтный пояс приложения.
func (s *Service) Location(ctx context.Context, userID int64) *time.Location {
	tz := s.cfg.AppTimezone
	if m, err := s.repo.GetByUserID(ctx, userID); err == nil && m.Timezone != "" {
		tz = m.Timezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.WithField("tz", tz).Warn("Не удалось загрузить часовой пояс, используем UTC+3")
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}
