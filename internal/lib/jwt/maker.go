// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки пары токенов: короткоживущего
// access-токена и долгоживущего refresh-токена. MakerImpl — конкретная реализация
// с использованием секретного ключа и отдельных сроков жизни для каждого типа.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateAccessToken создает короткоживущий access-токен для пользователя.
	GenerateAccessToken(username string) (string, error)
	// GenerateRefreshToken создает refresh-токен и возвращает его идентификатор (jti)
	// отдельно — идентификатор сохраняется в хранилище выданных токенов.
	GenerateRefreshToken(username string) (tokenID, token string, err error)
	// ParseToken возвращает *CustomClaims, если токен подписан и не истёк.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни access- и refresh-токенов.
type MakerImpl struct {
	secretKey  string        // Секретный ключ для подписи токенов
	accessTTL  time.Duration // Время жизни access-токена
	refreshTTL time.Duration // Время жизни refresh-токена
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}
