package apikey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/ccboard/internal/models"
	"github.com/iudanet/ccboard/internal/server/storage"
)

// ErrInvalidKey indicates that the presented API key does not resolve to a user
var ErrInvalidKey = errors.New("invalid api key")

// Service issues and verifies API keys.
//
// Ключ — это HS256 JWT вида header.payload.signature с claims {sub, iat}
// и без срока действия. Верификация двухступенчатая: криптографическая
// проверка подписи, затем поиск пользователя по точному совпадению строки
// ключа с сохраненным значением. Вторая ступень дает мгновенный отзыв через
// регенерацию без revocation списка: старый токен остается криптографически
// валидным, но join по сохраненному значению его больше не находит.
type Service struct {
	users  storage.UserStorage
	secret []byte
	now    func() time.Time
}

// Claims represents the API key payload
type Claims struct {
	jwt.RegisteredClaims
}

// NewService creates a new API key service
// secret should be a cryptographically secure random string
func NewService(secret string, users storage.UserStorage) *Service {
	return &Service{
		secret: []byte(secret),
		users:  users,
		now:    time.Now,
	}
}

// Issue creates a signed api key for the user.
// Детерминированность подписи гарантирует golang-jwt: при одном секрете
// любое изменение header или payload делает подпись невалидной. iat хранится
// с точностью до секунды, поэтому два выпуска в одну секунду для одного
// пользователя дают одинаковый токен.
func (s *Service) Issue(userID string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign api key: %w", err)
	}

	return signed, nil
}

// Verify resolves an API key to its user.
// Любой невалидный токен — неправильный формат, битая подпись, отсутствующий
// пользователь — дает ErrInvalidKey, никогда панику.
func (s *Service) Verify(ctx context.Context, apiKey string) (*models.User, error) {
	// Сначала подпись: payload не декодируется до успешной проверки
	_, err := jwt.ParseWithClaims(apiKey, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidKey
	}

	// Затем join по сохраненному значению, а не по identity из payload
	user, err := s.users.GetUserByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidKey
		}
		return nil, fmt.Errorf("failed to look up api key: %w", err)
	}

	return user, nil
}
