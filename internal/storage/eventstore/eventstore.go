// Package eventstore реализует хранилище событий на основе MongoDB.
// Каждая операция записи — одиночная атомарная операция над документом.
package eventstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/event-aggregator/internal/models"
)

const opTimeout = 5 * time.Second

// Store инкапсулирует коллекцию событий.
type Store struct {
	col *mongo.Collection
}

// New создаёт хранилище над переданной коллекцией.
func New(col *mongo.Collection) *Store {
	return &Store{col: col}
}

// Insert сохраняет событие и проставляет ему сгенерированный идентификатор.
func (s *Store) Insert(ctx context.Context, event *models.Event) error {
	const op = "eventstore.Insert"
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid
	}
	return nil
}

// ListAll возвращает все события.
func (s *Store) ListAll(ctx context.Context) ([]models.Event, error) {
	const op = "eventstore.ListAll"
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cur.Close(ctx)
	}()

	var out []models.Event
	for cur.Next(ctx) {
		var e models.Event
		if err := cur.Decode(&e); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, e)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// IncrementParticipants атомарно увеличивает счётчик участников на единицу
// и возвращает обновлённый документ. Для отсутствующего события
// возвращается mongo.ErrNoDocuments.
func (s *Store) IncrementParticipants(ctx context.Context, id string) (*models.Event, error) {
	const op = "eventstore.IncrementParticipants"
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mongo.ErrNoDocuments)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"participants": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var e models.Event
	if err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&e); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}

// DeleteFirstByTitle удаляет первое событие, чей заголовок совпадает
// с шаблоном без учёта регистра, и возвращает количество удалённых записей.
func (s *Store) DeleteFirstByTitle(ctx context.Context, titlePattern string) (int64, error) {
	const op = "eventstore.DeleteFirstByTitle"
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{"title": primitive.Regex{Pattern: titlePattern, Options: "i"}}
	res, err := s.col.DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.DeletedCount, nil
}
