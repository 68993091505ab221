package auditlog

import (
	"context"
	"log"
	"strings"
)

type Service interface {
	// Record appends an entry. Failures are logged and swallowed; the audit
	// trail never blocks the action it describes.
	Record(ctx context.Context, action, actorEmail, targetID, detail string)
	List(ctx context.Context, filter Filter) ([]*Entry, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, action, actorEmail, targetID, detail string) {
	action = strings.TrimSpace(action)
	if action == "" {
		return
	}

	e := &Entry{
		Action:     action,
		ActorEmail: strings.TrimSpace(actorEmail),
	}
	if t := strings.TrimSpace(targetID); t != "" {
		e.TargetID = &t
	}
	if d := strings.TrimSpace(detail); d != "" {
		e.Detail = &d
	}

	if err := s.repo.Create(ctx, e); err != nil {
		log.Printf("failed to record audit entry %s: %v", action, err)
	}
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	return s.repo.List(ctx, filter)
}
