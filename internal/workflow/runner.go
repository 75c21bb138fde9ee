// Package workflow はデモ用のセッションワークフローを提供する。
// 1件の人物レコードに対して挿入→ID検索→表示→削除を順番に実行する。
package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hitoshi/personstore/internal/model"
	"github.com/hitoshi/personstore/internal/repository"
)

// デモで投入する固定の人物レコード
const (
	demoName  = "João Bruno"
	demoEmail = "joao@gmail.com"
)

// Runner はワークフローの実行器。
// リポジトリ（セッション）の取得と解放は呼び出し側（app層）が行い、
// Runnerは3つのデータ操作と結果の表示のみを担当する。
type Runner struct {
	repo repository.PersonRepository
	out  io.Writer
}

// NewRunner はRunnerを生成する。取得したレコードのテキスト表現はoutに出力される。
func NewRunner(repo repository.PersonRepository, out io.Writer) *Runner {
	return &Runner{repo: repo, out: out}
}

// Run は挿入→検索→表示→削除を厳密に逐次実行する。
// 各操作はそれぞれ独立したトランザクションで行われ、失敗した操作のみが
// ロールバックされる。リトライや並行実行は行わない。
func (r *Runner) Run(ctx context.Context) error {
	runID := uuid.NewString()
	log := slog.Default().With(slog.String("run_id", runID))

	// 1. 挿入: ID未採番のレコードをトランザクション内で永続化する
	person := &model.Person{Name: demoName, Email: demoEmail}
	if err := r.repo.Create(ctx, person); err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	log.Info("person inserted", slog.Int64("person_id", person.ID))

	// 2. 検索: 採番されたIDで再取得する。未検出はエラーではなくnil。
	found, err := r.repo.FindByID(ctx, person.ID)
	if err != nil {
		return fmt.Errorf("retrieve failed: %w", err)
	}

	// 3. 表示: 正規のテキスト表現を出力する
	if found != nil {
		fmt.Fprintln(r.out, found.String())
	} else {
		log.Warn("person not found after insert", slog.Int64("person_id", person.ID))
	}

	// 4. 削除: 検索結果をそのまま渡す。nil（未検出）を渡した場合は
	// リポジトリ側のガードがDBに触れる前に呼び出し側エラーを返す。
	if err := r.repo.Delete(ctx, found); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	log.Info("person deleted", slog.Int64("person_id", person.ID))

	return nil
}
