package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint — геометрия места проведения события в формате GeoJSON.
// Coordinates всегда хранятся в порядке [долгота, широта], независимо от того,
// каким путём (геокодирование адреса или готовые координаты) они получены.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
}

// Rating — оценка события участником. Данные инертные: система их
// хранит, но не агрегирует.
type Rating struct {
	RaterID string  `bson:"raterId" json:"raterId"`
	Note    float64 `bson:"note" json:"note"`
}

// Event представляет событие в коллекции MongoDB.
type Event struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Location     GeoPoint           `bson:"location" json:"location"`
	Date         time.Time          `bson:"date" json:"date"`
	Type         string             `bson:"type" json:"type"`
	Participants int                `bson:"participants" json:"participants"`
	Price        float64            `bson:"price" json:"price"`
	Image        string             `bson:"image" json:"image"`
	Ratings      []Rating           `bson:"eventRating,omitempty" json:"eventRating,omitempty"`
	Creator      string             `bson:"creator,omitempty" json:"creator,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultEventImage — картинка события по умолчанию.
const DefaultEventImage = "handEvent.png"
