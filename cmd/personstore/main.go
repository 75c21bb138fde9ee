// personstore は人物レコードストアのエントリーポイント。
//
// サブコマンド:
//
//	demo        挿入→検索→表示→削除のデモワークフローを実行する（デフォルト）
//	serve       HTTP APIサーバーを起動する
//	migrate     データベースマイグレーションを適用する
//	healthcheck /health エンドポイントの疎通を確認する
package main

import (
	"fmt"
	"os"

	"github.com/hitoshi/personstore/internal/app"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
