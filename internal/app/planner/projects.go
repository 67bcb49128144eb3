package planner

import (
	"context"
	"fmt"

	"github.com/PabloGalante/planforge/internal/domain"
)

// DefaultProjectListLimit caps ListProjects when the caller passes no limit.
const DefaultProjectListLimit = 50

// Project is a stored project document as served to its owner.
type Project struct {
	ID     domain.ProjectID `json:"id"`
	UserID domain.UserID    `json:"userId"`
	Data   map[string]any   `json:"data"`
}

// GetProject returns the project if userID owns it. A project owned by
// someone else is reported as not found.
func (s *Service) GetProject(ctx context.Context, projectID domain.ProjectID, userID domain.UserID) (*Project, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: no store configured", domain.ErrPersistence)
	}

	doc, err := s.store.Get(ctx, ProjectsCollection, string(projectID))
	if err != nil {
		return nil, err
	}

	owner, _ := doc.Fields["user_id"].(string)
	if owner != string(userID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, projectID)
	}
	return toProject(doc), nil
}

// ListProjects returns the caller's projects, most recently updated first.
func (s *Service) ListProjects(ctx context.Context, userID domain.UserID, limit int) ([]*Project, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: no store configured", domain.ErrPersistence)
	}
	if limit <= 0 {
		limit = DefaultProjectListLimit
	}

	docs, err := s.store.ListByField(ctx, ProjectsCollection, "user_id", string(userID), limit)
	if err != nil {
		return nil, err
	}

	out := make([]*Project, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toProject(doc))
	}
	return out, nil
}

// Ready reports whether the document store is reachable.
func (s *Service) Ready(ctx context.Context) error {
	if s.store == nil {
		return fmt.Errorf("%w: no store configured", domain.ErrPersistence)
	}
	return s.store.Ping(ctx)
}

func toProject(doc *domain.Document) *Project {
	owner, _ := doc.Fields["user_id"].(string)
	return &Project{
		ID:     domain.ProjectID(doc.ID),
		UserID: domain.UserID(owner),
		Data:   doc.Fields,
	}
}
