package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/geonews/geonews/internal/geo"
	"github.com/geonews/geonews/internal/model"
)

// Common errors for news repository operations.
var (
	ErrNewsNotFound = errors.New("news item not found")
	ErrURLExists    = errors.New("url already exists")

	// ErrNotOwner covers both a missing item and an item owned by another
	// source; mutating callers cannot tell the two apart.
	ErrNotOwner = errors.New("requester does not own news item")
)

// newsColumns lists the selected columns for every news read.
// Coordinates always go through ST_AsText so the geography value reaches
// Go as WKT, which scanNews then normalizes via the geo codec.
const newsColumns = `id, news_source, title, description, ST_AsText(coordinates), type, date, url, processed_at`

// CreateNews inserts a news item. The caller is responsible for setting
// NewsSource from the authenticated identity; client input never reaches
// that column. Coordinates must already be canonical WKT (or nil).
func (r *Repository) CreateNews(ctx context.Context, item *model.NewsItem) (*model.NewsItem, error) {
	query := `
		INSERT INTO news (news_source, title, description, coordinates, type, date, url)
		VALUES ($1, $2, $3, ST_GeogFromText($4), $5, $6, $7)
		RETURNING ` + newsColumns

	row := r.pool.QueryRow(ctx, query,
		item.NewsSource,
		item.Title,
		item.Description,
		item.Coordinates,
		item.Type,
		item.Date,
		item.URL,
	)

	created, err := scanNews(row)
	if err != nil {
		if uniqueViolation(err) != nil {
			return nil, ErrURLExists
		}
		return nil, fmt.Errorf("failed to create news item: %w", err)
	}

	return created, nil
}

// GetNewsByID retrieves a single news item.
func (r *Repository) GetNewsByID(ctx context.Context, id int64) (*model.NewsItem, error) {
	query := `SELECT ` + newsColumns + ` FROM news WHERE id = $1`

	item, err := scanNews(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to get news item by ID: %w", err)
	}

	return item, nil
}

// ListNews retrieves all news items.
func (r *Repository) ListNews(ctx context.Context) ([]*model.NewsItem, error) {
	query := `SELECT ` + newsColumns + ` FROM news ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer rows.Close()

	return collectNews(rows)
}

// ListNewsBySource retrieves all news items created by the given source.
func (r *Repository) ListNewsBySource(ctx context.Context, source string) ([]*model.NewsItem, error) {
	query := `SELECT ` + newsColumns + ` FROM news WHERE news_source = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, source)
	if err != nil {
		return nil, fmt.Errorf("failed to list news by source: %w", err)
	}
	defer rows.Close()

	return collectNews(rows)
}

// UpdateNews overwrites the mutable fields of a news item: title,
// description, coordinates, type, date, and url. The news_source and
// processed_at columns are immutable. The ownership check is part of the
// statement itself, so a concurrent owner change cannot slip between
// check and write; zero rows updated means ErrNotOwner.
func (r *Repository) UpdateNews(ctx context.Context, id int64, item *model.NewsItem, requester string) (*model.NewsItem, error) {
	query := `
		UPDATE news
		SET title = $1, description = $2, coordinates = ST_GeogFromText($3), type = $4, date = $5, url = $6
		WHERE id = $7 AND news_source = $8
		RETURNING ` + newsColumns

	row := r.pool.QueryRow(ctx, query,
		item.Title,
		item.Description,
		item.Coordinates,
		item.Type,
		item.Date,
		item.URL,
		id,
		requester,
	)

	updated, err := scanNews(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotOwner
		}
		if uniqueViolation(err) != nil {
			return nil, ErrURLExists
		}
		return nil, fmt.Errorf("failed to update news item: %w", err)
	}

	return updated, nil
}

// DeleteNews removes a news item owned by the requester and returns its
// prior state. Zero rows deleted means ErrNotOwner.
func (r *Repository) DeleteNews(ctx context.Context, id int64, requester string) (*model.NewsItem, error) {
	query := `
		DELETE FROM news
		WHERE id = $1 AND news_source = $2
		RETURNING ` + newsColumns

	deleted, err := scanNews(r.pool.QueryRow(ctx, query, id, requester))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotOwner
		}
		return nil, fmt.Errorf("failed to delete news item: %w", err)
	}

	return deleted, nil
}

// NewsSourceExists reports whether any news item was created under the
// given source name. Used to keep the user-name and news-source
// namespaces disjoint at registration time.
func (r *Repository) NewsSourceExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM news WHERE news_source = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check news source: %w", err)
	}

	return exists, nil
}

// scanNews scans one news row and decodes the coordinates column.
func scanNews(row pgx.Row) (*model.NewsItem, error) {
	var item model.NewsItem
	var rawCoordinates *string

	err := row.Scan(
		&item.ID,
		&item.NewsSource,
		&item.Title,
		&item.Description,
		&rawCoordinates,
		&item.Type,
		&item.Date,
		&item.URL,
		&item.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}

	coordinates, err := geo.DecodePoint(rawCoordinates)
	if err != nil {
		return nil, err
	}
	item.Coordinates = coordinates

	return &item, nil
}

// collectNews drains rows through scanNews.
func collectNews(rows pgx.Rows) ([]*model.NewsItem, error) {
	items := make([]*model.NewsItem, 0)
	for rows.Next() {
		item, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan news row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate news rows: %w", err)
	}

	return items, nil
}
