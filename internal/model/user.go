package model

import "time"

// User はサービス利用ユーザーを表す。
// Usernameは作成時に一意性が保証され、以降変更されない。
// PasswordHashはbcryptハッシュであり、平文パスワードは一切保持しない。
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
