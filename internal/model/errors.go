package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, person, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodePersonNotFound   = "PERSON_NOT_FOUND"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeDetachedPerson   = "DETACHED_PERSON"
)

// NewPersonNotFoundError は人物レコード未検出エラーを生成する。
func NewPersonNotFoundError(id int64) *APIError {
	return &APIError{
		Code:     ErrCodePersonNotFound,
		Message:  fmt.Sprintf("指定された人物レコードが見つかりません: %d", id),
		Category: "person",
		Action:   "IDを確認してください。",
	}
}

// NewValidationFailedError は入力値検証エラーを生成する。
func NewValidationFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("入力値が不正です: %s", reason),
		Category: "validation",
		Action:   "nameとemailを両方指定してください。",
	}
}

// NewDetachedPersonError は未永続化レコードに対する削除要求エラーを生成する。
// 検索結果のnil（未検出）をそのまま削除に渡した場合の呼び出し側エラー。
func NewDetachedPersonError() *APIError {
	return &APIError{
		Code:     ErrCodeDetachedPerson,
		Message:  "永続化されていないレコードは削除できません。",
		Category: "person",
		Action:   "削除前に検索結果が見つかったことを確認してください。",
	}
}
