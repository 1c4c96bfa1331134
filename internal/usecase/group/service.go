// Package group manages groups. Groups are maintained by administrators
// through the admin CLI; the web surface only reads them.
package group

import (
	"context"
	"errors"
	"fmt"

	"yatube/internal/domain/entity"
	"yatube/internal/repository"
)

// ErrGroupNotFound indicates that no group has the given slug.
var ErrGroupNotFound = errors.New("group not found")

// Definition is one group entry of a sync file.
type Definition struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Service creates, updates and deletes groups.
type Service struct {
	Groups repository.GroupRepository
}

// Save creates the group or updates title and description of an existing one.
func (s *Service) Save(ctx context.Context, def Definition) (*entity.Group, error) {
	g := &entity.Group{Slug: def.Slug, Title: def.Title, Description: def.Description}
	if err := entity.ValidateGroup(g); err != nil {
		return nil, err
	}
	if err := s.Groups.Upsert(ctx, g); err != nil {
		return nil, fmt.Errorf("upsert group: %w", err)
	}
	return g, nil
}

// SyncResult reports what Sync did.
type SyncResult struct {
	Saved int
}

// Sync validates every definition before saving any of them, then saves
// them in order. Slugs must be unique within defs.
func (s *Service) Sync(ctx context.Context, defs []Definition) (SyncResult, error) {
	seen := make(map[string]bool, len(defs))
	for i, def := range defs {
		if err := entity.ValidateGroup(&entity.Group{Slug: def.Slug, Title: def.Title}); err != nil {
			return SyncResult{}, fmt.Errorf("group #%d: %w", i+1, err)
		}
		if seen[def.Slug] {
			return SyncResult{}, fmt.Errorf("group #%d: %w", i+1,
				&entity.ValidationError{Field: "slug", Message: fmt.Sprintf("duplicate slug %q", def.Slug)})
		}
		seen[def.Slug] = true
	}

	var res SyncResult
	for _, def := range defs {
		if _, err := s.Save(ctx, def); err != nil {
			return res, err
		}
		res.Saved++
	}
	return res, nil
}

// Delete removes the group. Its posts stay and lose their group.
func (s *Service) Delete(ctx context.Context, slug string) error {
	if err := s.Groups.Delete(ctx, slug); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

// List returns all groups ordered by title.
func (s *Service) List(ctx context.Context) ([]*entity.Group, error) {
	groups, err := s.Groups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}
