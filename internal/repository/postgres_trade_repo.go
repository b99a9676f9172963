package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/tradelog/internal/model"
)

// PostgresTradeRepo はPostgreSQLを使用したトレードリポジトリ。
type PostgresTradeRepo struct {
	db *sql.DB
}

// NewPostgresTradeRepo はPostgresTradeRepoを生成する。
func NewPostgresTradeRepo(db *sql.DB) *PostgresTradeRepo {
	return &PostgresTradeRepo{db: db}
}

// Create はトレードを作成し、採番済みIDと作成時刻をtradeに書き戻す。
func (r *PostgresTradeRepo) Create(ctx context.Context, trade *model.Trade) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO trades (owner_id, date, pair, direction, risk, rr, pl, obs, link)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		trade.OwnerID, trade.Date, trade.Pair, trade.Direction,
		trade.Risk, trade.RR, trade.PL, trade.Obs, trade.Link,
	).Scan(&trade.ID, &trade.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}

// ListByOwner は指定オーナーのトレードのみをid昇順（挿入順）で返す。
// 0件の場合は空スライスを返す。
func (r *PostgresTradeRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Trade, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, date, pair, direction, risk, rr, pl, obs, link, created_at
		 FROM trades
		 WHERE owner_id = $1
		 ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	trades := []*model.Trade{}
	for rows.Next() {
		trade := &model.Trade{}
		if err := rows.Scan(
			&trade.ID, &trade.OwnerID, &trade.Date, &trade.Pair, &trade.Direction,
			&trade.Risk, &trade.RR, &trade.PL, &trade.Obs, &trade.Link, &trade.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trades: %w", err)
	}

	return trades, nil
}

// Delete は指定IDのトレードがownerIDの所有である場合のみ削除する。
// WHERE句にオーナー条件を含めることで、他ユーザーのIDを指定しても
// 「存在しないID」と同じ結果（削除0件）になり、存在の有無が漏れない。
func (r *PostgresTradeRepo) Delete(ctx context.Context, tradeID, ownerID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM trades WHERE id = $1 AND owner_id = $2`,
		tradeID, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete trade: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// compile-time interface check
var _ TradeRepository = (*PostgresTradeRepo)(nil)
