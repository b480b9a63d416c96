// Package models содержит доменные структуры пользователей и событий,
// используемые в бизнес‑логике и при работе с хранилищами.
package models

import "time"

// User представляет зарегистрированный аккаунт.
//
// Пароль хранится только в виде bcrypt-хэша и никогда не попадает
// в JSON-ответы. Token — непрозрачный bearer-токен, выданный один раз
// при регистрации; им подтверждаются разрушающие операции.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	Telephone    string    `json:"telephone"`
	Birthdate    time.Time `json:"birthdate"`
	Photo        string    `json:"photo"`
	Token        string    `json:"token"`
	Followers    []string  `json:"followers"`
	Following    []string  `json:"following"`
	Favorites    []string  `json:"favorites"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DefaultUserPhoto — фото профиля по умолчанию.
const DefaultUserPhoto = "squirrelLogo.png"
