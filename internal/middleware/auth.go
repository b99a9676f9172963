// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/tradelog/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userContextKey はリクエストコンテキストに認証済みユーザーを格納するためのキー。
var userContextKey = contextKey("user")

// ガード内部の失敗種別。クライアントにはすべて同一の401として返し、
// 内訳はログにのみ記録する。
var (
	errMissingAuthHeader   = errors.New("authorization header is missing")
	errMalformedAuthScheme = errors.New("authorization header is not of the form 'Bearer <token>'")
	errUnknownUser         = errors.New("token subject does not resolve to an existing user")
)

// TokenDecoder はトークン復号に必要なインターフェース。
// auth.TokenIssuerの部分集合として定義する。
type TokenDecoder interface {
	Decode(token string) (string, error)
}

// UserFinder はユーザー名からユーザーを解決するインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// NewAuthMiddleware はAuthorization: Bearerヘッダーからトークンを取り出し、
// 署名・期限を検証した上で実在ユーザーへ解決するミドルウェアを返す。
// 解決したユーザーをリクエストコンテキストに注入する。
// トークンが構造的に有効でも、発行後にユーザーが消えていれば拒否する。
// すべての失敗経路でハンドラは実行されず、401のみが返る。
// 検証は純粋でサーバー側の状態を変更しない（トークンの更新も行わない）。
func NewAuthMiddleware(decoder TokenDecoder, users UserFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authenticate(r, decoder, users)
			if err != nil {
				slog.Warn("request rejected by auth guard",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("reason", err.Error()),
				)
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate はリクエストの資格情報を検証し、認証済みユーザーを返す。
//  1. ヘッダー欠落 → 拒否
//  2. "<scheme> <value>" の2要素に分割できない、またはschemeがBearer以外 → 拒否
//  3. トークン復号失敗（不正・期限切れ・署名不正・sub欠落）→ 復号エラーを伝播
//  4. subのユーザーが存在しない → 拒否
func authenticate(r *http.Request, decoder TokenDecoder, users UserFinder) (*model.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, errMissingAuthHeader
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errMalformedAuthScheme
	}

	username, err := decoder.Decode(parts[1])
	if err != nil {
		return nil, err
	}

	user, err := users.FindByUsername(r.Context(), username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token subject: %w", err)
	}
	if user == nil {
		return nil, errUnknownUser
	}

	return user, nil
}

// UserFromContext はリクエストコンテキストから認証済みユーザーを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func UserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("authenticated user not found in context")
	}
	return user, nil
}

// ContextWithUser はコンテキストに認証済みユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
