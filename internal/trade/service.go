// Package trade はトレード記録のドメインロジックを提供する。
// すべての操作は認証済みオーナーのIDでスコープされる。
package trade

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/tradelog/internal/model"
	"github.com/hitoshi/tradelog/internal/repository"
)

// MetricsRecorder はトレード系メトリクスの記録インターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsRecorder interface {
	RecordTradeCreated()
	RecordTradeDeleted()
}

// Input はトレード作成時にクライアントから受け取るフィールド。
// オーナーIDは意図的に含めない。所有者は常に認証済みコンテキストから
// 設定され、クライアント入力からは決して取り込まない。
type Input struct {
	Date      string
	Pair      string
	Direction string
	Risk      string
	RR        string
	PL        float64
	Obs       string
	Link      string
}

// Service はトレード記録のサービス層。
type Service struct {
	tradeRepo repository.TradeRepository
	metrics   MetricsRecorder
}

// NewService はServiceを生成する。metricsはnilでもよい。
func NewService(tradeRepo repository.TradeRepository, metrics MetricsRecorder) *Service {
	return &Service{
		tradeRepo: tradeRepo,
		metrics:   metrics,
	}
}

// Create は認証済みオーナーのトレードを作成する。
// 入力の形状検証に通れば常に成功する。日付・通貨ペアなどの文字列は
// 表示用の自由書式として保存し、内容の解釈は行わない。
func (s *Service) Create(ctx context.Context, ownerID int64, input Input) (*model.Trade, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	trade := &model.Trade{
		OwnerID:   ownerID,
		Date:      input.Date,
		Pair:      input.Pair,
		Direction: input.Direction,
		Risk:      input.Risk,
		RR:        input.RR,
		PL:        input.PL,
		Obs:       input.Obs,
		Link:      input.Link,
	}

	if err := s.tradeRepo.Create(ctx, trade); err != nil {
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordTradeCreated()
	}
	slog.Info("trade created",
		slog.Int64("trade_id", trade.ID),
		slog.Int64("owner_id", ownerID),
		slog.String("pair", trade.Pair),
	)

	return trade, nil
}

// List は指定オーナーのトレード一覧を挿入順で返す。
// 他ユーザーのトレードが混入する経路は存在しない。
func (s *Service) List(ctx context.Context, ownerID int64) ([]*model.Trade, error) {
	trades, err := s.tradeRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return trades, nil
}

// Delete は指定IDのトレードがオーナーの所有である場合のみ削除する。
// 該当なし（ID不存在または他ユーザー所有）は削除なしとして返し、エラーにはしない。
func (s *Service) Delete(ctx context.Context, tradeID, ownerID int64) (bool, error) {
	deleted, err := s.tradeRepo.Delete(ctx, tradeID, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete trade: %w", err)
	}

	if deleted {
		if s.metrics != nil {
			s.metrics.RecordTradeDeleted()
		}
		slog.Info("trade deleted",
			slog.Int64("trade_id", tradeID),
			slog.Int64("owner_id", ownerID),
		)
	}

	return deleted, nil
}

// validateInput はトレード入力の形状検証を行う。
// 日付・通貨ペア・売買方向は必須。その他は自由書式のため検証しない。
func validateInput(input Input) error {
	if input.Date == "" {
		return model.NewValidationError("日付を入力してください。")
	}
	if input.Pair == "" {
		return model.NewValidationError("通貨ペアを入力してください。")
	}
	if input.Direction == "" {
		return model.NewValidationError("売買方向を入力してください。")
	}
	return nil
}
