package service

import (
	"context"
	"errors"
	"time"

	"github.com/geonews/geonews/internal/geo"
	"github.com/geonews/geonews/internal/metrics"
	"github.com/geonews/geonews/internal/model"
	"github.com/geonews/geonews/internal/repository"
)

// News service errors.
var (
	ErrNewsNotFound    = errors.New("news item not found")
	ErrForbidden       = errors.New("not authorized to modify news item")
	ErrURLTaken        = errors.New("url already taken")
	ErrInvalidNewsType = errors.New("invalid news type")
	ErrTitleRequired   = errors.New("title is required")
	ErrURLRequired     = errors.New("url is required")
)

// NewsService handles news item business logic.
type NewsService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewNewsService creates a new NewsService.
func NewNewsService(repo *repository.Repository, recorder metrics.Recorder) *NewsService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &NewsService{
		repo:    repo,
		metrics: recorder,
	}
}

// NewsInput defines the client-settable fields of a news item.
// It is used for both create and update; update overwrites exactly these
// fields and nothing else.
type NewsInput struct {
	Title       string
	Description *string
	Coordinates *string
	Type        string
	Date        time.Time
	URL         string
}

// validate checks the input and returns canonical coordinates.
func (in *NewsInput) validate() (*string, error) {
	if in.Title == "" {
		return nil, ErrTitleRequired
	}
	if in.URL == "" {
		return nil, ErrURLRequired
	}
	if !model.NewsType(in.Type).IsValid() {
		return nil, ErrInvalidNewsType
	}
	return geo.EncodePoint(in.Coordinates)
}

// Create persists a new news item owned by ownerName.
// The source recorded on the item always comes from the authenticated
// identity, never from the client payload.
func (s *NewsService) Create(ctx context.Context, input NewsInput, ownerName string) (*model.NewsItem, error) {
	coordinates, err := input.validate()
	if err != nil {
		return nil, err
	}

	item := &model.NewsItem{
		NewsSource:  ownerName,
		Title:       input.Title,
		Description: input.Description,
		Coordinates: coordinates,
		Type:        model.NewsType(input.Type),
		Date:        input.Date,
		URL:         input.URL,
	}

	created, err := s.repo.CreateNews(ctx, item)
	if err != nil {
		if errors.Is(err, repository.ErrURLExists) {
			return nil, ErrURLTaken
		}
		return nil, err
	}

	s.metrics.IncNewsCreated()

	return created, nil
}

// List retrieves all news items.
func (s *NewsService) List(ctx context.Context) ([]*model.NewsItem, error) {
	return s.repo.ListNews(ctx)
}

// ListBySource retrieves all news items created by the given source.
func (s *NewsService) ListBySource(ctx context.Context, source string) ([]*model.NewsItem, error) {
	return s.repo.ListNewsBySource(ctx, source)
}

// Get retrieves a single news item by id.
func (s *NewsService) Get(ctx context.Context, id int64) (*model.NewsItem, error) {
	item, err := s.repo.GetNewsByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return item, nil
}

// Update overwrites the mutable fields of a news item. It fails with
// ErrForbidden unless the item exists and is owned by requesterName.
func (s *NewsService) Update(ctx context.Context, id int64, input NewsInput, requesterName string) (*model.NewsItem, error) {
	coordinates, err := input.validate()
	if err != nil {
		return nil, err
	}

	item := &model.NewsItem{
		Title:       input.Title,
		Description: input.Description,
		Coordinates: coordinates,
		Type:        model.NewsType(input.Type),
		Date:        input.Date,
		URL:         input.URL,
	}

	updated, err := s.repo.UpdateNews(ctx, id, item, requesterName)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotOwner):
			return nil, ErrForbidden
		case errors.Is(err, repository.ErrURLExists):
			return nil, ErrURLTaken
		}
		return nil, err
	}

	s.metrics.IncNewsUpdated()

	return updated, nil
}

// Delete removes a news item and returns its prior state. Same ownership
// rule as Update.
func (s *NewsService) Delete(ctx context.Context, id int64, requesterName string) (*model.NewsItem, error) {
	deleted, err := s.repo.DeleteNews(ctx, id, requesterName)
	if err != nil {
		if errors.Is(err, repository.ErrNotOwner) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	s.metrics.IncNewsDeleted()

	return deleted, nil
}
