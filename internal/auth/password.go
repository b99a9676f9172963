// Package auth はパスワード認証、セッショントークンの発行・検証を提供する。
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword は平文パスワードのbcryptハッシュを生成する。
// ソルトはbcryptが内部で生成するため、同じパスワードでも呼び出しごとに
// 異なるハッシュになる。costにはconfig.Config.BcryptCostを渡す。
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword は平文パスワードと保存済みハッシュの一致を検証する。
// ハッシュが不正な形式の場合もエラーにはせずfalseを返す。
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
