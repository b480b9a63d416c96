// Package repository реализует хранилище пользователей на основе PostgreSQL.
// Уникальность имени (без учёта регистра) и токена обеспечивается
// уникальными индексами; нарушение ограничения транслируется в
// ErrUniqueViolation, а не ловится предварительным SELECT.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrUniqueViolation сигнализирует о нарушении уникального индекса (SQLSTATE 23505).
var ErrUniqueViolation = errors.New("unique violation")

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его ping-ом.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// asStorageErr переводит ошибки драйвера в ошибки уровня хранилища.
func asStorageErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrUniqueViolation
	}
	return err
}
