// Package person は人物レコード管理のドメインロジックを提供する。
package person

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hitoshi/personstore/internal/model"
	"github.com/hitoshi/personstore/internal/repository"
)

// Service は人物レコード管理のサービス層。
// 入力値検証と登録・検索・削除のビジネスロジックを提供する。
type Service struct {
	repo repository.PersonRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.PersonRepository) *Service {
	return &Service{repo: repo}
}

// Register は人物レコードを検証して登録し、ID採番済みのレコードを返す。
func (s *Service) Register(ctx context.Context, name, email string) (*model.Person, error) {
	if strings.TrimSpace(name) == "" {
		return nil, model.NewValidationFailedError("nameが空です")
	}
	if strings.TrimSpace(email) == "" {
		return nil, model.NewValidationFailedError("emailが空です")
	}

	p := &model.Person{Name: name, Email: email}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("人物レコードの登録に失敗しました: %w", err)
	}

	slog.Info("person registered",
		slog.Int64("person_id", p.ID),
	)

	return p, nil
}

// Get は指定IDの人物レコードを返す。見つからない場合はnilを返す。
// 未検出はエラーではなく正常な結果として扱う。
func (s *Service) Get(ctx context.Context, id int64) (*model.Person, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("人物レコードの取得に失敗しました: %w", err)
	}
	return p, nil
}

// Remove は指定IDの人物レコードを削除する。
// レコードが存在しない場合はPersonNotFoundエラーを返す。
func (s *Service) Remove(ctx context.Context, id int64) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("人物レコードの取得に失敗しました: %w", err)
	}
	if p == nil {
		return model.NewPersonNotFoundError(id)
	}

	if err := s.repo.Delete(ctx, p); err != nil {
		return fmt.Errorf("人物レコードの削除に失敗しました: %w", err)
	}

	slog.Info("person removed",
		slog.Int64("person_id", id),
	)

	return nil
}

// List は全人物レコードをID昇順で返す。
func (s *Service) List(ctx context.Context) ([]*model.Person, error) {
	people, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("人物レコード一覧の取得に失敗しました: %w", err)
	}
	return people, nil
}
