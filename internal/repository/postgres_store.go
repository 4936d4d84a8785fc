package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"user-directory-service/internal/model"

	"github.com/jackc/pgx/v5"
)

// Коллекция хранится одной строкой.
const directoryRowID = 1

// PostgresStore хранит коллекцию пользователей одним JSONB-документом.
// Внутри RunInTransaction строка читается с FOR UPDATE, так что несколько
// экземпляров сервиса не перетирают изменения друг друга.
type PostgresStore struct {
	db *Postgres
}

// NewPostgresStore создаёт хранилище поверх подключения к PostgreSQL.
func NewPostgresStore(db *Postgres) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema создаёт таблицу и пустую строку коллекции, если их ещё нет.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS user_directory (
    id      SMALLINT PRIMARY KEY,
    users   JSONB    NOT NULL DEFAULT '[]'::jsonb,
    last_id BIGINT   NOT NULL DEFAULT 0
)`)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	_, err = s.db.Pool.Exec(ctx, `
INSERT INTO user_directory (id) VALUES ($1)
ON CONFLICT (id) DO NOTHING
`, directoryRowID)
	if err != nil {
		return fmt.Errorf("seed directory row: %w", err)
	}
	return nil
}

// Load читает коллекцию. Отсутствующая строка даёт пустую коллекцию.
func (s *PostgresStore) Load(ctx context.Context) (model.Collection, error) {
	q := s.db.GetQueryExecutor(ctx)

	query := `SELECT users, last_id FROM user_directory WHERE id = $1`
	if inTransaction(ctx) {
		query += ` FOR UPDATE`
	}

	var raw []byte
	var lastID int64
	if err := q.QueryRow(ctx, query, directoryRowID).Scan(&raw, &lastID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Collection{Users: make([]model.User, 0)}, nil
		}
		return model.Collection{}, fmt.Errorf("select users: %w", err)
	}

	users := make([]model.User, 0)
	if len(raw) > 0 {
		var decoded []model.User
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return model.Collection{}, fmt.Errorf("%w: user_directory: %v", ErrStorageCorrupt, err)
		}
		if decoded != nil {
			users = decoded
		}
	}

	return model.Collection{
		Users:  users,
		LastID: max(lastID, maxNumericID(users)),
	}, nil
}

// Save перезаписывает документ целиком.
func (s *PostgresStore) Save(ctx context.Context, coll model.Collection) error {
	data, err := EncodeUsers(coll.Users)
	if err != nil {
		return err
	}

	q := s.db.GetQueryExecutor(ctx)
	_, err = q.Exec(ctx, `
INSERT INTO user_directory (id, users, last_id)
VALUES ($1, $2::jsonb, $3)
ON CONFLICT (id) DO UPDATE
SET users   = EXCLUDED.users,
    last_id = EXCLUDED.last_id
`, directoryRowID, string(data), coll.LastID)
	if err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}
