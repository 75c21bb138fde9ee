package app

// Command はアプリケーションの起動モードを表す。
type Command string

const (
	// CommandDemo は1件の人物レコードに対する挿入→検索→表示→削除の
	// デモワークフローを実行することを示す。
	CommandDemo Command = "demo"
	// CommandServe はAPIサーバーモードで起動することを示す。
	CommandServe Command = "serve"
	// CommandMigrate はデータベースマイグレーションを実行することを示す。
	CommandMigrate Command = "migrate"
	// CommandHealthcheck はヘルスチェックを実行することを示す。
	// distroless環境でのDockerヘルスチェック用。
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand はコマンドライン引数からサブコマンドを解析する。
// 引数が空またはサポート外のコマンドの場合はCommandDemoを返す。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandDemo
	}

	switch args[0] {
	case "demo":
		return CommandDemo
	case "serve":
		return CommandServe
	case "migrate":
		return CommandMigrate
	case "healthcheck":
		return CommandHealthcheck
	default:
		return CommandDemo
	}
}
