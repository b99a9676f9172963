// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/tradelog/internal/model"
)

// ErrDuplicateUsername はユーザー名の一意制約違反を示す。
// 同名ユーザーの同時登録はストレージの制約で直列化され、
// 敗者にはこのエラーが返る。
var ErrDuplicateUsername = errors.New("username already exists")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成し、採番済みIDを含むUserを返す。
	// ユーザー名が既に存在する場合はErrDuplicateUsernameを返し、状態を変更しない。
	Create(ctx context.Context, username, passwordHash string) (*model.User, error)

	// FindByUsername は指定ユーザー名のユーザーを取得する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// TradeRepository はトレードデータの永続化インターフェース。
// すべての読み書きはオーナーIDでスコープされ、他ユーザーのレコードに
// 到達する経路は存在しない。更新操作は提供しない。
type TradeRepository interface {
	// Create はトレードを作成し、採番済みIDと作成時刻をtradeに書き戻す。
	// trade.OwnerIDは認証済みコンテキスト由来の値であること。
	Create(ctx context.Context, trade *model.Trade) error

	// ListByOwner は指定オーナーのトレードのみをid昇順（挿入順）で返す。
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.Trade, error)

	// Delete は指定IDのトレードがownerIDの所有である場合のみ削除する。
	// IDが存在しない場合と他ユーザーの所有である場合は区別せず、
	// 削除なし（false）として返す。該当なしはエラーではない。
	Delete(ctx context.Context, tradeID, ownerID int64) (bool, error)
}
