package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/tradelog/internal/middleware"
	"github.com/hitoshi/tradelog/internal/model"
	"github.com/hitoshi/tradelog/internal/trade"
)

// TradeServiceInterface はトレードハンドラーが必要とするサービスインターフェース。
type TradeServiceInterface interface {
	// Create は認証済みオーナーのトレードを作成する。
	Create(ctx context.Context, ownerID int64, input trade.Input) (*model.Trade, error)
	// List は指定オーナーのトレード一覧を挿入順で返す。
	List(ctx context.Context, ownerID int64) ([]*model.Trade, error)
	// Delete は指定IDのトレードがオーナーの所有である場合のみ削除する。
	Delete(ctx context.Context, tradeID, ownerID int64) (bool, error)
}

// TradeHandler はトレード記録のHTTPハンドラー。
// オーナーIDは常にリクエストコンテキストの認証済みユーザーから取得し、
// リクエストボディの値は所有権の決定に一切使用しない。
type TradeHandler struct {
	service TradeServiceInterface
}

// NewTradeHandler はTradeHandlerを生成する。
func NewTradeHandler(service TradeServiceInterface) *TradeHandler {
	return &TradeHandler{
		service: service,
	}
}

// tradeRequest はトレード作成リクエストのボディ。
// owner_idに相当するフィールドは受け付けない。
type tradeRequest struct {
	Date      string  `json:"date"`
	Pair      string  `json:"pair"`
	Direction string  `json:"direction"`
	Risk      string  `json:"risk"`
	RR        string  `json:"rr"`
	PL        float64 `json:"pl"`
	Obs       string  `json:"obs"`
	Link      string  `json:"link"`
}

// tradeResponse はトレード情報のAPIレスポンス。
type tradeResponse struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Date      string    `json:"date"`
	Pair      string    `json:"pair"`
	Direction string    `json:"direction"`
	Risk      string    `json:"risk"`
	RR        string    `json:"rr"`
	PL        float64   `json:"pl"`
	Obs       string    `json:"obs"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

// createTradeResponse はトレード作成成功のレスポンス。
type createTradeResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}

// deleteTradeResponse はトレード削除のレスポンス。
type deleteTradeResponse struct {
	Status string `json:"status"`
}

// Create はトレードを作成する。
// POST /api/trades
func (h *TradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return
	}

	created, err := h.service.Create(r.Context(), user.ID, trade.Input{
		Date:      req.Date,
		Pair:      req.Pair,
		Direction: req.Direction,
		Risk:      req.Risk,
		RR:        req.RR,
		PL:        req.PL,
		Obs:       req.Obs,
		Link:      req.Link,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createTradeResponse{
		Status: "success",
		ID:     created.ID,
	})
}

// List は認証済みユーザー自身のトレード一覧を返す。
// GET /api/trades
func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	trades, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]tradeResponse, len(trades))
	for i, t := range trades {
		results[i] = toTradeResponse(t)
	}

	writeJSON(w, http.StatusOK, results)
}

// Delete は指定IDのトレードを削除する。
// 認証済みユーザーの所有でない場合は存在しないIDと同様にno-opとなる。
// DELETE /api/trades/{id}
func (h *TradeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	tradeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "トレードIDは数値で指定してください。",
			Category: "validation",
			Action:   "URLのトレードIDを確認してください。",
		})
		return
	}

	deleted, err := h.service.Delete(r.Context(), tradeID, user.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	status := "noop"
	if deleted {
		status = "deleted"
	}
	writeJSON(w, http.StatusOK, deleteTradeResponse{Status: status})
}

// toTradeResponse はドメインのTradeをhandlerのレスポンス型に変換する。
func toTradeResponse(t *model.Trade) tradeResponse {
	return tradeResponse{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Date:      t.Date,
		Pair:      t.Pair,
		Direction: t.Direction,
		Risk:      t.Risk,
		RR:        t.RR,
		PL:        t.PL,
		Obs:       t.Obs,
		Link:      t.Link,
		CreatedAt: t.CreatedAt,
	}
}
