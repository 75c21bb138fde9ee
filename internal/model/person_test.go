package model

import "testing"

// TestPerson_String は3フィールドを連結した正規テキスト表現を検証する。
func TestPerson_String(t *testing.T) {
	p := &Person{ID: 1, Name: "João Bruno", Email: "joao@gmail.com"}

	got := p.String()
	want := "1 João Bruno joao@gmail.com"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

// TestPerson_Persisted はID採番前後のPersistedの判定を検証する。
func TestPerson_Persisted(t *testing.T) {
	var nilPerson *Person
	if nilPerson.Persisted() {
		t.Error("nil person should not be persisted")
	}

	unsaved := &Person{Name: "A", Email: "a@x.com"}
	if unsaved.Persisted() {
		t.Error("person with unset ID should not be persisted")
	}

	saved := &Person{ID: 42, Name: "A", Email: "a@x.com"}
	if !saved.Persisted() {
		t.Error("person with assigned ID should be persisted")
	}
}

// TestAPIError_Error はエラーメッセージのフォーマットを検証する。
func TestAPIError_Error(t *testing.T) {
	err := NewPersonNotFoundError(7)
	if err.Code != ErrCodePersonNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodePersonNotFound)
	}
	if err.Category != "person" {
		t.Errorf("Category = %q, want %q", err.Category, "person")
	}
	msg := err.Error()
	if msg == "" {
		t.Fatal("expected non-empty error message")
	}
}

// TestNewDetachedPersonError は呼び出し側エラーのコードを検証する。
func TestNewDetachedPersonError(t *testing.T) {
	err := NewDetachedPersonError()
	if err.Code != ErrCodeDetachedPerson {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeDetachedPerson)
	}
}
