// Package handler はHTTP APIのハンドラーとルーティングを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/personstore/internal/metrics"
	"github.com/hitoshi/personstore/internal/middleware"
	"github.com/hitoshi/personstore/internal/model"
)

// PersonServiceInterface は人物レコードハンドラーが必要とするサービスインターフェース。
type PersonServiceInterface interface {
	// Register は人物レコードを検証して登録し、ID採番済みのレコードを返す。
	Register(ctx context.Context, name, email string) (*model.Person, error)
	// Get は指定IDの人物レコードを返す。見つからない場合はnilを返す。
	Get(ctx context.Context, id int64) (*model.Person, error)
	// Remove は指定IDの人物レコードを削除する。
	Remove(ctx context.Context, id int64) error
	// List は全人物レコードをID昇順で返す。
	List(ctx context.Context) ([]*model.Person, error)
}

// PersonHandler は人物レコード管理のHTTPハンドラー。
type PersonHandler struct {
	service   PersonServiceInterface
	collector metrics.MetricsCollector
}

// NewPersonHandler はPersonHandlerを生成する。collectorはnil可。
func NewPersonHandler(service PersonServiceInterface, collector metrics.MetricsCollector) *PersonHandler {
	return &PersonHandler{
		service:   service,
		collector: collector,
	}
}

// registerRequest は人物レコード登録リクエストのボディ。
type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register は人物レコードを登録する。
// POST /api/people
func (h *PersonHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationFailedError("リクエストボディを解釈できません"))
		return
	}

	person, err := h.service.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordPersonCreated()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(person)
}

// Get は指定IDの人物レコードを返す。
// GET /api/people/{id}
func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	person, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordLookup(person != nil)
	}

	// 未検出はサービス層ではエラーではないが、HTTP境界では404に変換する
	if person == nil {
		middleware.WriteErrorResponse(w, http.StatusNotFound, model.NewPersonNotFoundError(id))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(person)
}

// List は全人物レコードを返す。
// GET /api/people
func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	people, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(people)
}

// Remove は指定IDの人物レコードを削除する。
// DELETE /api/people/{id}
func (h *PersonHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordPersonDeleted()
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- ヘルパー関数 ---

// parseID はURLパスからIDを取り出す。不正な場合は400を書き込みfalseを返す。
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationFailedError("idは正の整数で指定してください"))
		return 0, false
	}
	return id, true
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		middleware.WriteErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodePersonNotFound:
		return http.StatusNotFound
	case model.ErrCodeValidationFailed:
		return http.StatusBadRequest
	case model.ErrCodeDetachedPerson:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
