// Package model はドメインモデルを定義する。
package model

import "fmt"

// Person は永続化対象の人物レコードを表す。
// IDは永続化前は0（未割り当て）で、INSERT時にデータベースが一度だけ採番する。
// 以後IDが変わることはない。
type Person struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Persisted はデータベースによるID採番が済んでいるかを返す。
func (p *Person) Persisted() bool {
	return p != nil && p.ID != 0
}

// String は3フィールドを連結した正規のテキスト表現を返す。
func (p *Person) String() string {
	return fmt.Sprintf("%d %s %s", p.ID, p.Name, p.Email)
}
