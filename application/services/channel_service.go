// Package services implements the application use cases on top of the
// port interfaces. Handlers call into this layer; nothing here touches
// HTTP or storage APIs directly.
package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"forum-backend/application/ports"
	"forum-backend/domain/forum"
	"forum-backend/pkg/auth"
	appErrors "forum-backend/pkg/errors"
)

// ChannelService manages channel lifecycle and membership.
type ChannelService struct {
	channels ports.ChannelRepository
	logger   *zap.Logger
}

// NewChannelService creates a new channel service
func NewChannelService(channels ports.ChannelRepository, logger *zap.Logger) *ChannelService {
	return &ChannelService{channels: channels, logger: logger}
}

// Create derives the channel key from the name and stores the channel
// with the caller as owning participant. Creation is admin-gated.
func (s *ChannelService) Create(ctx context.Context, claims *auth.Claims, name, createdBy, visibility string) (*forum.Channel, error) {
	if err := requireAdmin(claims, "create channel"); err != nil {
		return nil, err
	}

	parsed, err := forum.ParseVisibility(visibility)
	if err != nil {
		return nil, err
	}

	channel, err := forum.NewChannel(name, createdBy, parsed)
	if err != nil {
		return nil, err
	}

	if err := s.channels.Create(ctx, channel); err != nil {
		if appErrors.IsConflict(err) {
			return nil, appErrors.NewConflictError(
				fmt.Sprintf("channel already exists: (channelId: %s, name: %s)", channel.ChannelID, name))
		}
		return nil, err
	}

	s.logger.Info("channel created",
		zap.String("channelId", channel.ChannelID),
		zap.String("visibility", string(channel.Visibility)),
	)
	return channel, nil
}

// Get returns a channel by its key.
func (s *ChannelService) Get(ctx context.Context, channelID string) (*forum.Channel, error) {
	return s.channels.Get(ctx, channelID)
}

// List returns one page of channels.
func (s *ChannelService) List(ctx context.Context, limit int, cursor string) (*ports.ChannelPage, error) {
	if limit < 1 {
		return nil, appErrors.NewValidationError("count must be greater than zero")
	}
	return s.channels.List(ctx, limit, cursor)
}

// Members returns the channel's participant list.
func (s *ChannelService) Members(ctx context.Context, channelID string) ([]forum.Participant, error) {
	channel, err := s.channels.Get(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return channel.Participants, nil
}

// AddParticipant appends a member to the channel. Admin-gated; the
// participant list is append-only and new members are never owners.
func (s *ChannelService) AddParticipant(ctx context.Context, claims *auth.Claims, channelID, name string) error {
	if err := requireAdmin(claims, "add participant"); err != nil {
		return err
	}

	if _, err := s.channels.Get(ctx, channelID); err != nil {
		return err
	}

	return s.channels.AddParticipant(ctx, channelID, forum.Participant{Name: name, IsOwner: false})
}

// Delete removes an empty channel. The emptiness check is a storage
// precondition on totalQuestions, so a concurrent question create cannot
// slip past it.
func (s *ChannelService) Delete(ctx context.Context, channelID string) error {
	if err := s.channels.Delete(ctx, channelID); err != nil {
		if appErrors.IsConflict(err) {
			return appErrors.NewConflictError("channel is not empty")
		}
		return err
	}
	s.logger.Info("channel deleted", zap.String("channelId", channelID))
	return nil
}

// requireAdmin gates role-protected operations.
func requireAdmin(claims *auth.Claims, operation string) error {
	if claims == nil || !claims.HasAnyRole(auth.RoleAdmin, auth.RoleSuperAdmin) {
		return appErrors.NewForbiddenError(
			fmt.Sprintf("access denied: user not allowed to %s, contact your admin", operation))
	}
	return nil
}
