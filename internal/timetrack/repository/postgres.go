package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hourglass-app/hourglass-backend/internal/timetrack/domain"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, password_hash, is_admin, is_activated, coalesce(activation_link, ''), total_hours, projects, version, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	projects, err := marshalProjects(u.Projects)
	if err != nil {
		return err
	}

	const q = `
insert into users (id, email, password_hash, is_admin, is_activated, activation_link, total_hours, projects)
values ($1::uuid, $2, $3, $4, $5, nullif($6, ''), $7, $8)
returning version, created_at, updated_at;
`
	err = r.db.QueryRow(ctx, q,
		u.ID, u.Email, u.PasswordHash, u.IsAdmin, u.IsActivated,
		u.ActivationLink, u.TotalHours, projects,
	).Scan(&u.Version, &u.CreatedAt, &u.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `select ` + userColumns + ` from users where id = $1::uuid;`
	return r.getOne(ctx, q, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `select ` + userColumns + ` from users where email = $1;`
	return r.getOne(ctx, q, email)
}

func (r *PostgresRepository) GetByActivationLink(ctx context.Context, link string) (*domain.User, error) {
	const q = `select ` + userColumns + ` from users where activation_link = $1;`
	return r.getOne(ctx, q, link)
}

// Save is the atomic write half of the read-modify-write unit: the whole
// document is replaced in one statement guarded by the version token.
func (r *PostgresRepository) Save(ctx context.Context, u *domain.User) error {
	projects, err := marshalProjects(u.Projects)
	if err != nil {
		return err
	}

	const q = `
update users
set email = $2,
    password_hash = $3,
    is_admin = $4,
    is_activated = $5,
    activation_link = nullif($6, ''),
    total_hours = $7,
    projects = $8,
    version = version + 1,
    updated_at = now()
where id = $1::uuid and version = $9;
`
	ct, err := r.db.Exec(ctx, q,
		u.ID, u.Email, u.PasswordHash, u.IsAdmin, u.IsActivated,
		u.ActivationLink, u.TotalHours, projects, u.Version,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return r.saveFailure(ctx, u.ID)
	}

	u.Version++
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `delete from users where id = $1::uuid;`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, f domain.UserFilter, skip, limit int) ([]domain.User, int, error) {
	where, args := buildUserFilter(f)

	countQ := `select count(*) from users` + where + `;`
	var total int
	if err := r.db.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQ := fmt.Sprintf(`select `+userColumns+` from users%s order by created_at desc offset $%d limit $%d;`,
		where, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, listQ, append(args, skip, limit)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]domain.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *u)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `select id from users order by created_at;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresRepository) getOne(ctx context.Context, q string, arg any) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, q, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// saveFailure disambiguates a zero-row update: the row is either gone or was
// written by a concurrent request since our read.
func (r *PostgresRepository) saveFailure(ctx context.Context, id string) error {
	var exists bool
	err := r.db.QueryRow(ctx, `select exists (select 1 from users where id = $1::uuid);`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrVersionConflict
	}
	return domain.ErrUserNotFound
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u        domain.User
		projects []byte
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.IsActivated,
		&u.ActivationLink, &u.TotalHours, &projects, &u.Version,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(projects, &u.Projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return &u, nil
}

func marshalProjects(projects []domain.Project) ([]byte, error) {
	if projects == nil {
		projects = []domain.Project{}
	}
	b, err := json.Marshal(projects)
	if err != nil {
		return nil, fmt.Errorf("encode projects: %w", err)
	}
	return b, nil
}

// buildUserFilter translates domain.UserFilter into SQL with the same
// semantics as the in-memory Matches predicate.
func buildUserFilter(f domain.UserFilter) (string, []any) {
	var (
		where []string
		args  []any
	)

	if f.Email != "" {
		args = append(args, escapeLike(f.Email))
		where = append(where, fmt.Sprintf(`email ilike '%%' || $%d || '%%' escape '\'`, len(args)))
	}

	if len(f.UserTypes) > 0 {
		admins := make([]bool, 0, len(f.UserTypes))
		for _, t := range f.UserTypes {
			admins = append(admins, t == domain.UserTypeAdmin)
		}
		args = append(args, admins)
		where = append(where, fmt.Sprintf(`is_admin = any($%d)`, len(args)))
	}

	if len(f.UserActivity) > 0 {
		active := make([]bool, 0, len(f.UserActivity))
		for _, s := range f.UserActivity {
			active = append(active, s == domain.UserActivityActive)
		}
		args = append(args, active)
		where = append(where, fmt.Sprintf(`is_activated = any($%d)`, len(args)))
	}

	if len(f.Projects) > 0 {
		args = append(args, f.Projects)
		where = append(where, fmt.Sprintf(
			`exists (select 1 from jsonb_array_elements(projects) p where p->>'name' = any($%d))`, len(args)))
	}

	if len(where) == 0 {
		return "", nil
	}
	return " where " + strings.Join(where, " and "), args
}

// escapeLike makes the email fragment match literally inside ILIKE.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
