// Package token генерирует непрозрачные bearer-токены аккаунтов.
//
// Токен выдаётся один раз при регистрации и на всём протяжении жизни
// аккаунта служит единственным подтверждением для разрушающих операций.
// Ротация и истечение срока не предусмотрены.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// entropyBytes — количество случайных байт в токене.
const entropyBytes = 32

// Length — длина токена в символах после кодирования.
const Length = 43

// New возвращает новый токен: 32 байта из криптографического источника,
// закодированные в base64url без набивки. Результат всегда Length символов.
func New() (string, error) {
	const op = "token.New"
	buf := make([]byte, entropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
