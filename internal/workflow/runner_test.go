package workflow

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hitoshi/personstore/internal/model"
)

// --- モック ---

// memoryPersonRepo はマップ上でリポジトリの契約を再現するインメモリ実装。
// FindByIDは未検出時にnilを返し、DeleteはDetachedPersonガードを持つ。
type memoryPersonRepo struct {
	nextID int64
	people map[int64]model.Person

	createErr error
	findErr   error
	deleteErr error
}

func newMemoryPersonRepo() *memoryPersonRepo {
	return &memoryPersonRepo{nextID: 1, people: make(map[int64]model.Person)}
}

func (m *memoryPersonRepo) FindByID(ctx context.Context, id int64) (*model.Person, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	p, ok := m.people[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memoryPersonRepo) Create(ctx context.Context, p *model.Person) error {
	if m.createErr != nil {
		return m.createErr
	}
	p.ID = m.nextID
	m.nextID++
	m.people[p.ID] = *p
	return nil
}

func (m *memoryPersonRepo) Delete(ctx context.Context, p *model.Person) error {
	if !p.Persisted() {
		return model.NewDetachedPersonError()
	}
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.people[p.ID]; !ok {
		return model.NewPersonNotFoundError(p.ID)
	}
	delete(m.people, p.ID)
	return nil
}

func (m *memoryPersonRepo) List(ctx context.Context) ([]*model.Person, error) {
	people := make([]*model.Person, 0, len(m.people))
	for id := range m.people {
		p := m.people[id]
		people = append(people, &p)
	}
	return people, nil
}

// --- テスト ---

// TestRunner_Run は挿入→検索→表示→削除の正規フローを検証する。
func TestRunner_Run(t *testing.T) {
	repo := newMemoryPersonRepo()
	var out bytes.Buffer
	runner := NewRunner(repo, &out)

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// 取得したレコードの正規テキスト表現が出力されること
	got := strings.TrimSpace(out.String())
	want := "1 João Bruno joao@gmail.com"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	// 削除後に行が残っていないこと
	if len(repo.people) != 0 {
		t.Errorf("expected all rows deleted, %d remain", len(repo.people))
	}
}

// TestRunner_Run_InsertFailure は挿入失敗時にエラーが伝播し、
// 後続の操作が実行されないことを検証する。
func TestRunner_Run_InsertFailure(t *testing.T) {
	repo := newMemoryPersonRepo()
	repo.createErr = errors.New("constraint violation")
	var out bytes.Buffer
	runner := NewRunner(repo, &out)

	err := runner.Run(context.Background())
	if !errors.Is(err, repo.createErr) {
		t.Fatalf("expected insert error to propagate, got %v", err)
	}

	// 部分的な挿入が観測されないこと
	if len(repo.people) != 0 {
		t.Error("no rows should be persisted after a failed insert")
	}
	// 何も出力されないこと
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

// TestRunner_Run_RetrieveFailure は検索失敗時にエラーが伝播することを検証する。
func TestRunner_Run_RetrieveFailure(t *testing.T) {
	repo := newMemoryPersonRepo()
	repo.findErr = errors.New("connection dropped")
	var out bytes.Buffer
	runner := NewRunner(repo, &out)

	err := runner.Run(context.Background())
	if !errors.Is(err, repo.findErr) {
		t.Fatalf("expected retrieve error to propagate, got %v", err)
	}
}

// TestRunner_Run_DeleteFailure は削除失敗時にエラーが伝播することを検証する。
func TestRunner_Run_DeleteFailure(t *testing.T) {
	repo := newMemoryPersonRepo()
	repo.deleteErr = errors.New("connection dropped")
	var out bytes.Buffer
	runner := NewRunner(repo, &out)

	err := runner.Run(context.Background())
	if !errors.Is(err, repo.deleteErr) {
		t.Fatalf("expected delete error to propagate, got %v", err)
	}

	// 表示は削除より前に行われている
	if !strings.Contains(out.String(), "João Bruno") {
		t.Error("retrieved person should be printed before delete is attempted")
	}
}
