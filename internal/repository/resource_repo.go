package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/locpham-gh/the-gathering/internal/model"

	"github.com/jackc/pgx/v5"
)

const resourceColumns = `r.id, r.title, r.description, r.content_type, r.url, r.thumbnail_url, r.category, r.author, r.format, r.uploader_id, r.status, r.created_at, r.updated_at`

// ResourceRepository defines operations for library resources
type ResourceRepository interface {
	Create(ctx context.Context, resource *model.Resource) error
	FindByID(ctx context.Context, id int) (*model.Resource, error)
	FindVisible(ctx context.Context, role model.Role, filters model.ResourceFilters) ([]model.Resource, error)
	UpdateStatus(ctx context.Context, id int, status model.ResourceStatus) (*model.Resource, error)
}

type resourceRepository struct {
	db Querier
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db Querier) ResourceRepository {
	return &resourceRepository{db: db}
}

// Create inserts a new resource into the database
func (r *resourceRepository) Create(ctx context.Context, res *model.Resource) error {
	sql := `INSERT INTO resources (title, description, content_type, url, thumbnail_url, category, author, format, uploader_id, status)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		res.Title, res.Description, res.ContentType, res.URL, res.ThumbnailURL,
		res.Category, res.Author, res.Format, res.UploaderID, string(res.Status),
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}
	return nil
}

// FindByID retrieves a resource by its ID, joined with the uploader's
// username for display
func (r *resourceRepository) FindByID(ctx context.Context, id int) (*model.Resource, error) {
	res := &model.Resource{}
	sql := `SELECT ` + resourceColumns + `, u.username
            FROM resources r LEFT JOIN users u ON r.uploader_id = u.id
            WHERE r.id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&res.ID, &res.Title, &res.Description, &res.ContentType, &res.URL, &res.ThumbnailURL,
		&res.Category, &res.Author, &res.Format, &res.UploaderID, &res.Status,
		&res.CreatedAt, &res.UpdatedAt, &res.UploaderUsername,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find resource by ID: %w", err)
	}
	return res, nil
}

// FindVisible retrieves the resources visible to a caller of the given
// role, applying optional filters, newest first.
//
// The visibility clause is always emitted before any client-supplied
// filter so no parameter combination can widen what a role may see:
// admins see every status (or exactly the one they filtered on),
// everyone else sees approved rows only and their status filter is
// silently ignored.
func (r *resourceRepository) FindVisible(ctx context.Context, role model.Role, filters model.ResourceFilters) ([]model.Resource, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + resourceColumns + `, u.username
                               FROM resources r LEFT JOIN users u ON r.uploader_id = u.id`)

	args := []interface{}{}
	argCount := 1
	var conditions []string

	switch role {
	case model.RoleAdmin:
		if filters.Status != nil && *filters.Status != "" {
			conditions = append(conditions, fmt.Sprintf("r.status = $%d", argCount))
			args = append(args, *filters.Status)
			argCount++
		}
	case model.RoleUser:
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", argCount))
		args = append(args, string(model.StatusApproved))
		argCount++
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}

	if filters.Search != nil && *filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(r.title ILIKE $%d OR r.description ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*filters.Search+"%")
		argCount++
	}
	if filters.ContentType != nil && *filters.ContentType != "" && *filters.ContentType != "all" {
		conditions = append(conditions, fmt.Sprintf("r.content_type = $%d", argCount))
		args = append(args, *filters.ContentType)
		argCount++
	}
	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("r.category = $%d", argCount))
		args = append(args, *filters.Category)
		//argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY r.created_at DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	var resources []model.Resource
	for rows.Next() {
		var res model.Resource
		if err := rows.Scan(
			&res.ID, &res.Title, &res.Description, &res.ContentType, &res.URL, &res.ThumbnailURL,
			&res.Category, &res.Author, &res.Format, &res.UploaderID, &res.Status,
			&res.CreatedAt, &res.UpdatedAt, &res.UploaderUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan resource row: %w", err)
		}
		resources = append(resources, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resource rows: %w", err)
	}
	return resources, nil
}

// UpdateStatus sets a resource's moderation status and refreshes
// updated_at. Returns nil when the id does not exist.
func (r *resourceRepository) UpdateStatus(ctx context.Context, id int, status model.ResourceStatus) (*model.Resource, error) {
	res := &model.Resource{}
	sql := `UPDATE resources SET status = $1, updated_at = NOW()
            WHERE id = $2
            RETURNING id, title, description, content_type, url, thumbnail_url, category, author, format, uploader_id, status, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, string(status), id).Scan(
		&res.ID, &res.Title, &res.Description, &res.ContentType, &res.URL, &res.ThumbnailURL,
		&res.Category, &res.Author, &res.Format, &res.UploaderID, &res.Status,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resource status: %w", err)
	}
	return res, nil
}
