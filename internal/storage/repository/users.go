package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/event-aggregator/internal/models"
)

const userColumns = `id, username, password_hash, email, telephone, birthdate, photo, token,
			      followers, following, favorites, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var followers, following, favorites []byte
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Telephone,
		&u.Birthdate, &u.Photo, &u.Token,
		&followers, &following, &favorites, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(followers, &u.Followers); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(following, &u.Following); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(favorites, &u.Favorites); err != nil {
		return nil, err
	}
	return u, nil
}

func marshalList(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}

// CreateUser сохраняет нового пользователя и возвращает сохранённую запись.
// Дубликат имени (без учёта регистра) или токена даёт ErrUniqueViolation.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	followers, err := marshalList(user.Followers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	following, err := marshalList(user.Following)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	favorites, err := marshalList(user.Favorites)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO users (username, password_hash, email, telephone, birthdate,
			      photo, token, followers, following, favorites)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + userColumns + `;`
	row := s.DB.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.Email, user.Telephone, user.Birthdate,
		user.Photo, user.Token, followers, following, favorites)
	saved, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, asStorageErr(err))
	}
	return saved, nil
}

// GetByUsernameFold возвращает пользователя по имени без учёта регистра.
func (s *Storage) GetByUsernameFold(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetByUsernameFold"
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetByEmail возвращает пользователя по точному совпадению email.
func (s *Storage) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetByEmail"
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetByToken возвращает пользователя по точному совпадению токена.
func (s *Storage) GetByToken(ctx context.Context, tok string) (*models.User, error) {
	const op = "storage.GetByToken"
	query := `SELECT ` + userColumns + ` FROM users WHERE token = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, tok))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateUsernameByToken меняет имя пользователя, найденного по токену,
// и возвращает количество изменённых строк. Совпадающее имя не считается
// изменением.
func (s *Storage) UpdateUsernameByToken(ctx context.Context, tok, username string) (int64, error) {
	const op = "storage.UpdateUsernameByToken"
	query := `UPDATE users
			  SET username = $2, updated_at = now()
			  WHERE token = $1 AND username IS DISTINCT FROM $2`
	res, err := s.DB.ExecContext(ctx, query, tok, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, asStorageErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// UpdatePhotoByUsernameFold сохраняет ссылку на новое фото профиля.
func (s *Storage) UpdatePhotoByUsernameFold(ctx context.Context, username, url string) (int64, error) {
	const op = "storage.UpdatePhotoByUsernameFold"
	query := `UPDATE users
			  SET photo = $2, updated_at = now()
			  WHERE LOWER(username) = LOWER($1)`
	res, err := s.DB.ExecContext(ctx, query, username, url)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// DeleteByID удаляет аккаунт по идентификатору.
func (s *Storage) DeleteByID(ctx context.Context, id int64) error {
	const op = "storage.DeleteByID"
	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	}
	return nil
}

// ListUsers возвращает всех пользователей.
func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage.ListUsers"
	rows, err := s.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
