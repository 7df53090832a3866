package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
	"github.com/polkiloo/membersonly/internal/domain/model"
	"github.com/polkiloo/membersonly/internal/domain/repository"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const uniqueViolation = "23505"

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type messageRepository struct {
	storage *Storage
}

// New connects to PostgreSQL and applies pending migrations.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(ctx, dsn); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("database ready")
	return &Storage{pool: pool, logger: logger}, nil
}

func runMigrations(ctx context.Context, dsn string) error {
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Users returns the user repository.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

// Messages returns the message repository.
func (s *Storage) Messages() repository.MessageRepository {
	return &messageRepository{storage: s}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domainErrors.ErrStorage, err)
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (id, first_name, last_name, login_id, password_hash, member)
                   VALUES ($1, $2, $3, $4, $5, FALSE)
                   RETURNING created_at`
	u := *user
	u.ID = uuid.New()
	u.Member = false
	err := r.storage.pool.QueryRow(ctx, query, u.ID, u.FirstName, u.LastName, u.LoginID, u.PasswordHash).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, storageErr("create user", err)
	}
	return &u, nil
}

const selectUser = `SELECT id, first_name, last_name, login_id, password_hash, member, created_at FROM users`

func (r *userRepository) GetByLogin(ctx context.Context, loginID string) (*model.User, error) {
	return r.getOne(ctx, selectUser+` WHERE login_id=$1`, loginID)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getOne(ctx, selectUser+` WHERE id=$1`, id)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.LoginID, &u.PasswordHash, &u.Member, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, storageErr("get user", err)
	}
	return &u, nil
}

func (r *userRepository) SetMember(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE users SET member=TRUE WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return storageErr("set member", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- MessageRepository implementation ---

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) (*model.Message, error) {
	const query = `INSERT INTO messages (id, title, text, author_id, created_at)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING created_at`
	m := *msg
	m.ID = uuid.New()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if err := r.storage.pool.QueryRow(ctx, query, m.ID, m.Title, m.Text, m.AuthorID, m.CreatedAt).Scan(&m.CreatedAt); err != nil {
		return nil, storageErr("create message", err)
	}
	return &m, nil
}

func (r *messageRepository) ListWithAuthors(ctx context.Context) ([]model.BoardEntry, error) {
	const query = `SELECT m.id, m.title, m.text, m.author_id, m.created_at, u.id, u.first_name, u.last_name
                   FROM messages m
                   LEFT JOIN users u ON u.id = m.author_id
                   ORDER BY m.created_at, m.seq`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, storageErr("list messages", err)
	}
	defer rows.Close()

	result := make([]model.BoardEntry, 0)
	for rows.Next() {
		var (
			e         model.BoardEntry
			authorID  *uuid.UUID
			firstName *string
			lastName  *string
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Text, &e.AuthorID, &e.CreatedAt, &authorID, &firstName, &lastName); err != nil {
			return nil, storageErr("scan message", err)
		}
		if authorID != nil && firstName != nil && lastName != nil {
			e.Author = &model.Author{ID: *authorID, FirstName: *firstName, LastName: *lastName}
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list messages", err)
	}
	return result, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

var _ repository.Factory = (*Storage)(nil)
