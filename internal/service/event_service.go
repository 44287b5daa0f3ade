package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cellhub/backend/internal/dto"
	"cellhub/backend/internal/model"
	"cellhub/backend/internal/repository"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidEvent  = errors.New("invalid event data")
)

// EventService manages ministry-level calendar events.
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest, caller Caller) (*dto.EventResponse, error)
	List(ctx context.Context, caller Caller) ([]dto.EventResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEventRequest, caller Caller) (*dto.EventResponse, error)
	Delete(ctx context.Context, id string, caller Caller) error
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService creates an EventService.
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest, caller Caller) (*dto.EventResponse, error) {
	ministry, err := s.repo.Ministry.GetByID(ctx, req.MinistryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMinistryNotFound
		}
		s.logger.Error("loading ministry failed", zap.Error(err))
		return nil, err
	}
	if !canAccessMinistry(caller, ministry) {
		return nil, ErrNotAllowed
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, ErrInvalidEvent
	}

	event := &model.Event{
		MinistryID:  req.MinistryID,
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    startsAt,
		Location:    req.Location,
	}
	if req.EndsAt != nil && *req.EndsAt != "" {
		endsAt, err := time.Parse(time.RFC3339, *req.EndsAt)
		if err != nil {
			return nil, ErrInvalidEvent
		}
		event.EndsAt = &endsAt
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("creating event failed", zap.Error(err))
		return nil, err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "create", "event", event.EventID, event.Title)
	return toEventResponse(event), nil
}

func (s *eventService) List(ctx context.Context, caller Caller) ([]dto.EventResponse, error) {
	ministryIDs, err := accessibleMinistryIDs(ctx, s.repo, caller)
	if err != nil {
		s.logger.Error("resolving accessible ministries failed", zap.Error(err))
		return nil, err
	}
	if ministryIDs != nil && len(ministryIDs) == 0 {
		return []dto.EventResponse{}, nil
	}

	events, err := s.repo.Event.ListByMinistries(ctx, ministryIDs)
	if err != nil {
		s.logger.Error("listing events failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *toEventResponse(&events[i]))
	}
	return result, nil
}

func (s *eventService) Update(ctx context.Context, id string, req *dto.UpdateEventRequest, caller Caller) (*dto.EventResponse, error) {
	event, err := s.loadAuthorized(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartsAt != nil && *req.StartsAt != "" {
		startsAt, err := time.Parse(time.RFC3339, *req.StartsAt)
		if err != nil {
			return nil, ErrInvalidEvent
		}
		event.StartsAt = startsAt
	}
	if req.EndsAt != nil {
		if *req.EndsAt == "" {
			event.EndsAt = nil
		} else {
			endsAt, err := time.Parse(time.RFC3339, *req.EndsAt)
			if err != nil {
				return nil, ErrInvalidEvent
			}
			event.EndsAt = &endsAt
		}
	}

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.logger.Error("updating event failed", zap.Error(err))
		return nil, err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "update", "event", event.EventID, "")
	return toEventResponse(event), nil
}

func (s *eventService) Delete(ctx context.Context, id string, caller Caller) error {
	event, err := s.loadAuthorized(ctx, id, caller)
	if err != nil {
		return err
	}

	if err := s.repo.Event.Delete(ctx, id); err != nil {
		s.logger.Error("deleting event failed", zap.Error(err))
		return err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "delete", "event", id, event.Title)
	return nil
}

func (s *eventService) loadAuthorized(ctx context.Context, id string, caller Caller) (*model.Event, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("loading event failed", zap.Error(err))
		return nil, err
	}

	ministry, err := s.repo.Ministry.GetByID(ctx, event.MinistryID)
	if err != nil {
		s.logger.Error("loading ministry failed", zap.Error(err))
		return nil, err
	}
	if !canAccessMinistry(caller, ministry) {
		return nil, ErrNotAllowed
	}
	return event, nil
}

func toEventResponse(e *model.Event) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:          e.EventID,
		MinistryID:  e.MinistryID,
		Title:       e.Title,
		Description: e.Description,
		StartsAt:    e.StartsAt.Format(timeFormat),
		Location:    e.Location,
		CreatedAt:   e.CreatedAt.Format(timeFormat),
	}
	if e.EndsAt != nil {
		t := e.EndsAt.Format(timeFormat)
		resp.EndsAt = &t
	}
	return resp
}
