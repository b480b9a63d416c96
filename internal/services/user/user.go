// Package user содержит бизнес-логику учётных записей: регистрацию,
// проверку учётных данных, переименование, смену фото и удаление аккаунта.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/event-aggregator/internal/lib/password"
	"github.com/magabrotheeeer/event-aggregator/internal/lib/token"
	"github.com/magabrotheeeer/event-aggregator/internal/models"
	"github.com/magabrotheeeer/event-aggregator/internal/storage/repository"
)

// Ошибки бизнес-уровня. Обработчики переводят их в ответы API.
var (
	// ErrUserExists — имя уже занято (без учёта регистра).
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials — единый сигнал для неизвестного email и
	// неверного пароля: различить их снаружи нельзя.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidToken — токен не соответствует ни одному аккаунту.
	ErrInvalidToken = errors.New("invalid token")
	// ErrNotOwner — токен принадлежит другому аккаунту.
	ErrNotOwner = errors.New("token does not own this account")
	// ErrNothingToUpdate — по токену никто не найден либо имя не изменилось.
	ErrNothingToUpdate = errors.New("user not found or username unchanged")
	// ErrNoFile — файл фото не был передан.
	ErrNoFile = errors.New("no file uploaded")
	// ErrInvalidBirthdate — дату рождения не удалось разобрать.
	ErrInvalidBirthdate = errors.New("invalid birthdate")
)

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByToken(ctx context.Context, tok string) (*models.User, error)
	GetByUsernameFold(ctx context.Context, username string) (*models.User, error)
	UpdateUsernameByToken(ctx context.Context, tok, username string) (int64, error)
	UpdatePhotoByUsernameFold(ctx context.Context, username, url string) (int64, error)
	DeleteByID(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// MediaUploader описывает внешний хостинг изображений.
type MediaUploader interface {
	Upload(ctx context.Context, file io.Reader) (string, error)
}

// RegisterRequest — данные для создания аккаунта. Photo — единственное
// необязательное поле.
type RegisterRequest struct {
	Username  string
	Password  string
	Birthdate string
	Email     string
	Telephone string
	Photo     string
}

// Service реализует операции над учётными записями.
type Service struct {
	repo  UserRepository
	media MediaUploader
	log   *slog.Logger
}

// New создает новый Service.
func New(repo UserRepository, media MediaUploader, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		media: media,
		log:   log,
	}
}

func parseBirthdate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidBirthdate
}

// Register создает новый аккаунт: хэширует пароль, выдаёт токен и
// сохраняет запись. Дубликат имени определяется уникальным индексом
// хранилища, а не предварительным поиском.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	const op = "services.user.Register"

	birthdate, err := parseBirthdate(req.Birthdate)
	if err != nil {
		return nil, err
	}

	hash, err := password.GetHash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tok, err := token.New()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	photo := req.Photo
	if photo == "" {
		photo = models.DefaultUserPhoto
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		Telephone:    req.Telephone,
		Birthdate:    birthdate,
		Photo:        photo,
		Token:        tok,
		Followers:    []string{},
		Following:    []string{},
		Favorites:    []string{},
	}

	saved, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.log.Info("registered new user", slog.String("username", saved.Username))
	return saved, nil
}

// Login проверяет email и пароль. Email нормализуется к нижнему регистру
// перед поиском. Возвращает токен и отображаемое имя.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (tok, username string, err error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if !password.Verify(u.PasswordHash, rawPassword) {
		return "", "", ErrInvalidCredentials
	}
	return u.Token, u.Username, nil
}

// Rename меняет имя аккаунта, найденного по токену. Если никто не найден
// или имя совпадает с текущим, возвращает ErrNothingToUpdate.
func (s *Service) Rename(ctx context.Context, tok, newUsername string) error {
	n, err := s.repo.UpdateUsernameByToken(ctx, tok, newUsername)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNothingToUpdate
	}
	s.log.Info("renamed user", slog.String("username", newUsername))
	return nil
}

// UpdatePicture загружает фото во внешний хостинг и сохраняет ссылку
// в профиле. Поиск пользователя идёт без учёта регистра и выполняется
// до проверки файла, чтобы не грузить картинку несуществующему аккаунту.
func (s *Service) UpdatePicture(ctx context.Context, username string, file io.Reader) (string, error) {
	if _, err := s.repo.GetByUsernameFold(ctx, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if file == nil {
		return "", ErrNoFile
	}

	url, err := s.media.Upload(ctx, file)
	if err != nil {
		return "", err
	}

	if _, err := s.repo.UpdatePhotoByUsernameFold(ctx, username, url); err != nil {
		return "", err
	}
	return url, nil
}

// Delete удаляет аккаунт по его собственному токену. Токен должен
// резолвиться в аккаунт с именем claimedUsername — чужой аккаунт
// удалить нельзя.
func (s *Service) Delete(ctx context.Context, tok, claimedUsername string) error {
	u, err := s.repo.GetByToken(ctx, tok)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidToken
		}
		return err
	}
	if u.Username != claimedUsername {
		return ErrNotOwner
	}
	if err := s.repo.DeleteByID(ctx, u.ID); err != nil {
		return err
	}
	s.log.Info("deleted user account", slog.String("username", u.Username))
	return nil
}

// List возвращает всех пользователей.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}
