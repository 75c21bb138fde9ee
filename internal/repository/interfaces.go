// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/personstore/internal/model"
)

// PersonRepository は人物レコードの永続化インターフェース。
type PersonRepository interface {
	// FindByID は指定IDの人物レコードを取得する。見つからない場合はnilを返す。
	// 未検出はエラーではなく正常な結果として扱う。
	FindByID(ctx context.Context, id int64) (*model.Person, error)

	// Create は人物レコードをトランザクション内で挿入する。
	// コミット成功時、データベースが採番したIDをpersonに書き戻す。
	// 失敗時はロールバックされ、部分的な挿入は観測されない。
	// IDが既に採番済みのpersonを渡した場合はエラーを返す。
	Create(ctx context.Context, person *model.Person) error

	// Delete は永続化済みの人物レコードをトランザクション内で削除する。
	// nilまたはID未採番のpersonを渡した場合は、データベースに触れる前に
	// DetachedPersonエラーで即座に失敗する。
	// 該当行が存在しない場合はPersonNotFoundエラーを返す。
	Delete(ctx context.Context, person *model.Person) error

	// List は全人物レコードをID昇順で返す。レコードが無い場合は空スライスを返す。
	List(ctx context.Context) ([]*model.Person, error)
}
