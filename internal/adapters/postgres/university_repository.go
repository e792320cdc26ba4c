package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

const (
	universityColumns = `u.id, u.name, u.address, u.website, u.logo_url, ST_AsBinary(u.location::geometry), u.created_at, u.updated_at`
	campusColumns     = `c.id, c.university_id, c.name, c.address, ST_AsBinary(c.location::geometry), c.created_at, c.updated_at`
)

// UniversityRepository хранит университеты и их кампусы
type UniversityRepository struct {
	pool *pgxpool.Pool
}

func NewUniversityRepository(pool *pgxpool.Pool) (*UniversityRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &UniversityRepository{pool: pool}, nil
}

func scanUniversity(row rowScanner) (*domain.University, error) {
	var (
		u        domain.University
		location []byte
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Address, &u.Website, &u.LogoURL, &location, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	point, err := decodePoint(location)
	if err != nil {
		return nil, err
	}
	u.Location = point
	u.Campuses = []domain.Campus{}
	return &u, nil
}

func scanCampus(row rowScanner) (*domain.Campus, error) {
	var (
		c        domain.Campus
		location []byte
	)
	if err := row.Scan(&c.ID, &c.UniversityID, &c.Name, &c.Address, &location, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	point, err := decodePoint(location)
	if err != nil {
		return nil, err
	}
	c.Location = point
	return &c, nil
}

func (r *UniversityRepository) Create(ctx context.Context, u *domain.University) error {
	location, err := encodePoint(u.Location)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO universities (id, name, address, website, logo_url, location, geohash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, ST_GeomFromWKB($6, 4326)::geography, $7, $8, $9)`,
		u.ID, u.Name, u.Address, u.Website, u.LogoURL, location, u.Location.Geohash(), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
			"component": "UniversityRepository",
			"method":    "Create",
		}).Error("Failed to insert university", err, port.Fields{"name": u.Name})
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to insert university: %w", err)
	}
	return nil
}

func (r *UniversityRepository) Update(ctx context.Context, u *domain.University) error {
	location, err := encodePoint(u.Location)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE universities SET name = $2, address = $3, website = $4, logo_url = $5,
			location = ST_GeomFromWKB($6, 4326)::geography, geohash = $7, updated_at = $8
		WHERE id = $1`,
		u.ID, u.Name, u.Address, u.Website, u.LogoURL, location, u.Location.Geohash(), u.UpdatedAt)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update university: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAnchorNotFound
	}
	return nil
}

// Delete удаляет университет, кампусы удаляются каскадом
func (r *UniversityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM universities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete university: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAnchorNotFound
	}
	return nil
}

func (r *UniversityRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.University, error) {
	u, err := scanUniversity(r.pool.QueryRow(ctx, `SELECT `+universityColumns+` FROM universities u WHERE u.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAnchorNotFound
		}
		return nil, fmt.Errorf("failed to find university: %w", err)
	}
	universities := []domain.University{*u}
	if err := r.loadCampuses(ctx, universities); err != nil {
		return nil, err
	}
	return &universities[0], nil
}

func (r *UniversityRepository) loadCampuses(ctx context.Context, universities []domain.University) error {
	if len(universities) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(universities))
	index := make(map[uuid.UUID]int, len(universities))
	for i, u := range universities {
		ids = append(ids, u.ID)
		index[u.ID] = i
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+campusColumns+` FROM campuses c
		WHERE c.university_id = ANY($1::uuid[])
		ORDER BY c.name ASC, c.id ASC`, ids)
	if err != nil {
		return fmt.Errorf("failed to load campuses: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanCampus(rows)
		if err != nil {
			return fmt.Errorf("failed to scan campus: %w", err)
		}
		i := index[c.UniversityID]
		universities[i].Campuses = append(universities[i].Campuses, *c)
	}
	return rows.Err()
}

// List - справочник по имени; search ищет подстроку без учета регистра
func (r *UniversityRepository) List(ctx context.Context, search string, page domain.Pagination) ([]domain.University, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = `WHERE u.name ILIKE $1`
		args = append(args, "%"+escapeLike(search)+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM universities u `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count universities: %w", err)
	}
	if total == 0 {
		return []domain.University{}, 0, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM universities u %s ORDER BY u.name ASC, u.id ASC LIMIT $%d OFFSET $%d`,
		universityColumns, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, page.Limit(), page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list universities: %w", err)
	}
	universities := make([]domain.University, 0, page.Limit())
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("failed to scan university: %w", err)
		}
		universities = append(universities, *u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.loadCampuses(ctx, universities); err != nil {
		return nil, 0, err
	}
	return universities, total, nil
}

func (r *UniversityRepository) FindFirst(ctx context.Context) (*domain.University, error) {
	u, err := scanUniversity(r.pool.QueryRow(ctx,
		`SELECT `+universityColumns+` FROM universities u ORDER BY u.name ASC, u.id ASC LIMIT 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find first university: %w", err)
	}
	return u, nil
}

// GetOrCreateByName нужен сидеру: повторный запуск не создает дублей
func (r *UniversityRepository) GetOrCreateByName(ctx context.Context, u *domain.University) (bool, error) {
	location, err := encodePoint(u.Location)
	if err != nil {
		return false, err
	}
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO universities (id, name, address, website, logo_url, location, geohash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, ST_GeomFromWKB($6, 4326)::geography, $7, $8, $9)
		ON CONFLICT ON CONSTRAINT universities_name_key DO NOTHING`,
		u.ID, u.Name, u.Address, u.Website, u.LogoURL, location, u.Location.Geohash(), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert university: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	if err := r.pool.QueryRow(ctx, `SELECT id FROM universities WHERE name = $1`, u.Name).Scan(&u.ID); err != nil {
		return false, fmt.Errorf("failed to load existing university: %w", err)
	}
	return false, nil
}

func (r *UniversityRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM universities`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete universities: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UniversityRepository) CreateCampus(ctx context.Context, c *domain.Campus) error {
	location, err := encodePoint(c.Location)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO campuses (id, university_id, name, address, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, ST_GeomFromWKB($5, 4326)::geography, $6, $7)`,
		c.ID, c.UniversityID, c.Name, c.Address, location, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to insert campus: %w", err)
	}
	return nil
}

func (r *UniversityRepository) UpdateCampus(ctx context.Context, c *domain.Campus) error {
	location, err := encodePoint(c.Location)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE campuses SET name = $3, address = $4, location = ST_GeomFromWKB($5, 4326)::geography, updated_at = $6
		WHERE id = $1 AND university_id = $2`,
		c.ID, c.UniversityID, c.Name, c.Address, location, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update campus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCampusNotFound
	}
	return nil
}

func (r *UniversityRepository) DeleteCampus(ctx context.Context, universityID, campusID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campuses WHERE id = $1 AND university_id = $2`, campusID, universityID)
	if err != nil {
		return fmt.Errorf("failed to delete campus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCampusNotFound
	}
	return nil
}

func (r *UniversityRepository) FindCampus(ctx context.Context, campusID uuid.UUID) (*domain.Campus, error) {
	c, err := scanCampus(r.pool.QueryRow(ctx, `SELECT `+campusColumns+` FROM campuses c WHERE c.id = $1`, campusID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCampusNotFound
		}
		return nil, fmt.Errorf("failed to find campus: %w", err)
	}
	return c, nil
}
