package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// トークン検証失敗の内訳。
// ハンドラ境界ではすべて同一の401に畳み込み、内訳はログにのみ残す。
var (
	// ErrTokenMalformed はトークンがJWTとして解析できないことを示す。
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenExpired はトークンの有効期限が過ぎていることを示す。
	ErrTokenExpired = errors.New("token is expired")
	// ErrBadSignature は署名がサーバーの秘密鍵で検証できないことを示す。
	ErrBadSignature = errors.New("token signature is invalid")
	// ErrMissingSubject はsubクレームが存在しないことを示す。
	ErrMissingSubject = errors.New("token has no subject claim")
)

// TokenConfig はトークン発行・検証の設定。
// グローバル定数ではなく明示的に注入することで、テストごとに
// 異なる鍵・有効期間を使用できる。
type TokenConfig struct {
	// Secret はHMAC署名用の対称鍵。サーバープロセスのみが保持する。
	Secret []byte
	// Expiry は発行時点からの有効期間。期限は絶対時刻として埋め込まれ、
	// スライディングウィンドウでは延長されない。
	Expiry time.Duration
}

// TokenIssuer は自己完結型の署名付きセッショントークンを発行・復号する。
// サーバー側にセッション状態を持たないため、失効は有効期限のみで制御される。
type TokenIssuer struct {
	config TokenConfig
}

// NewTokenIssuer はTokenIssuerを生成する。
func NewTokenIssuer(config TokenConfig) *TokenIssuer {
	return &TokenIssuer{config: config}
}

// Issue は指定ユーザー名を主体とするHS256署名付きJWTを発行する。
// expクレームには発行時刻+Expiryの絶対時刻を設定する。
func (i *TokenIssuer) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(now.Add(i.config.Expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.config.Secret)
}

// Decode はトークンを検証し、埋め込まれたユーザー名をそのまま返す。
// 失敗時はErrTokenMalformed・ErrTokenExpired・ErrBadSignature・
// ErrMissingSubjectのいずれかを返す。
func (i *TokenIssuer) Decode(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.config.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrBadSignature
		default:
			return "", ErrTokenMalformed
		}
	}

	if !token.Valid {
		return "", ErrBadSignature
	}

	if claims.Subject == "" {
		return "", ErrMissingSubject
	}

	return claims.Subject, nil
}
