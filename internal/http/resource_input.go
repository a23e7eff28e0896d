package http

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/mrlokans/learnhub/internal/apperr"
	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/database/resources"
	"github.com/mrlokans/learnhub/internal/entities"
	"github.com/mrlokans/learnhub/internal/search"
)

// resourceInput is the JSON shape for creating a resource, either directly or
// inline in a bookmark request.
type resourceInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Type        string `json:"type"`
	Difficulty  string `json:"difficulty"`
	SubjectID   *uint  `json:"subjectId"`
	Subject     string `json:"subject"`
}

// resourcePatch is the JSON shape for a partial update. Absent fields are left alone.
type resourcePatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	Source      *string `json:"source"`
	Type        *string `json:"type"`
	Difficulty  *string `json:"difficulty"`
	SubjectID   *uint   `json:"subjectId"`
	Subject     *string `json:"subject"`
}

// resourceBuilder validates resource payloads and resolves their subjects.
type resourceBuilder struct {
	subjects SubjectStore
}

// build turns in into an unsaved resource. The subject is taken by id, or
// resolved by name and created when missing.
func (b resourceBuilder) build(ctx context.Context, in resourceInput) (*entities.Resource, error) {
	title := strings.TrimSpace(in.Title)
	link := strings.TrimSpace(in.URL)
	switch {
	case title == "":
		return nil, apperr.Validation("title is required")
	case link == "":
		return nil, apperr.Validation("url is required")
	case in.Type == "":
		return nil, apperr.Validation("type is required")
	case in.Difficulty == "":
		return nil, apperr.Validation("difficulty is required")
	}
	if err := validateURL(link); err != nil {
		return nil, err
	}

	rtype, ok := entities.ParseResourceType(in.Type)
	if !ok {
		return nil, apperr.Validation("type must be one of VIDEO, ARTICLE, COURSE, DOCUMENT")
	}
	difficulty, ok := entities.ParseDifficulty(in.Difficulty)
	if !ok {
		return nil, apperr.Validation("difficulty must be one of BEGINNER, INTERMEDIATE, ADVANCED")
	}
	source, err := parseSource(in.Source, link)
	if err != nil {
		return nil, err
	}

	subject, err := b.resolveSubject(ctx, in.SubjectID, in.Subject)
	if err != nil {
		return nil, err
	}

	return &entities.Resource{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		URL:         link,
		Source:      source,
		Type:        rtype,
		Difficulty:  difficulty,
		SubjectID:   subject.ID,
		Subject:     subject,
	}, nil
}

// patch validates p into a repository update.
func (b resourceBuilder) patch(ctx context.Context, p resourcePatch) (resources.Update, error) {
	var upd resources.Update

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return upd, apperr.Validation("title cannot be empty")
		}
		upd.Title = &title
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		upd.Description = &desc
	}
	if p.URL != nil {
		link := strings.TrimSpace(*p.URL)
		if err := validateURL(link); err != nil {
			return upd, err
		}
		upd.URL = &link
	}
	if p.Source != nil {
		source, ok := entities.ParseResourceSource(*p.Source)
		if !ok {
			return upd, apperr.Validation("source must be one of COURSERA, EDX, KHAN_ACADEMY, YOUTUBE, OTHER")
		}
		upd.Source = &source
	}
	if p.Type != nil {
		rtype, ok := entities.ParseResourceType(*p.Type)
		if !ok {
			return upd, apperr.Validation("type must be one of VIDEO, ARTICLE, COURSE, DOCUMENT")
		}
		upd.Type = &rtype
	}
	if p.Difficulty != nil {
		difficulty, ok := entities.ParseDifficulty(*p.Difficulty)
		if !ok {
			return upd, apperr.Validation("difficulty must be one of BEGINNER, INTERMEDIATE, ADVANCED")
		}
		upd.Difficulty = &difficulty
	}
	if p.SubjectID != nil || p.Subject != nil {
		name := ""
		if p.Subject != nil {
			name = *p.Subject
		}
		subject, err := b.resolveSubject(ctx, p.SubjectID, name)
		if err != nil {
			return upd, err
		}
		upd.SubjectID = &subject.ID
	}
	return upd, nil
}

func (b resourceBuilder) resolveSubject(ctx context.Context, id *uint, name string) (*entities.Subject, error) {
	if id != nil && *id != 0 {
		subject, err := b.subjects.GetByID(ctx, *id)
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.Validation("subject does not exist")
		}
		return subject, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("subject is required")
	}
	return b.subjects.GetOrCreate(ctx, name)
}

// parseSource validates an explicit source or infers one from the URL host.
func parseSource(raw, link string) (entities.ResourceSource, error) {
	if strings.TrimSpace(raw) == "" {
		return entities.SourceFromHost(search.ExtractDomain(link)), nil
	}
	source, ok := entities.ParseResourceSource(raw)
	if !ok {
		return "", apperr.Validation("source must be one of COURSERA, EDX, KHAN_ACADEMY, YOUTUBE, OTHER")
	}
	return source, nil
}

func validateURL(link string) error {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperr.Validation("url must be an absolute http(s) URL")
	}
	return nil
}
