package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/personstore/internal/model"
)

// PostgresPersonRepo はPostgreSQLを使用した人物レコードリポジトリ。
type PostgresPersonRepo struct {
	db *sql.DB
}

// NewPostgresPersonRepo はPostgresPersonRepoを生成する。
func NewPostgresPersonRepo(db *sql.DB) *PostgresPersonRepo {
	return &PostgresPersonRepo{db: db}
}

// FindByID は指定IDの人物レコードを取得する。見つからない場合はnilを返す。
func (r *PostgresPersonRepo) FindByID(ctx context.Context, id int64) (*model.Person, error) {
	person := &model.Person{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email FROM people WHERE id = $1`,
		id,
	).Scan(&person.ID, &person.Name, &person.Email)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find person by ID: %w", err)
	}

	return person, nil
}

// Create は人物レコードをトランザクション内で挿入する。
// コミット成功時、データベースが採番したIDをpersonに書き戻す。
func (r *PostgresPersonRepo) Create(ctx context.Context, person *model.Person) error {
	if person == nil {
		return fmt.Errorf("person must not be nil")
	}
	if person.Persisted() {
		return fmt.Errorf("person already persisted with ID %d", person.ID)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO people (name, email) VALUES ($1, $2) RETURNING id`,
		person.Name, person.Email,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// コミット確定後にのみIDを書き戻す
	person.ID = id
	return nil
}

// Delete は永続化済みの人物レコードをトランザクション内で削除する。
// 未検出結果（nil）やID未採番のレコードは呼び出し側エラーとして即座に失敗する。
func (r *PostgresPersonRepo) Delete(ctx context.Context, person *model.Person) error {
	if !person.Persisted() {
		return model.NewDetachedPersonError()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM people WHERE id = $1`,
		person.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewPersonNotFoundError(person.ID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// List は全人物レコードをID昇順で返す。
func (r *PostgresPersonRepo) List(ctx context.Context) ([]*model.Person, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email FROM people ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	people := make([]*model.Person, 0)
	for rows.Next() {
		person := &model.Person{}
		if err := rows.Scan(&person.ID, &person.Name, &person.Email); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	return people, nil
}

// compile-time interface check
var _ PersonRepository = (*PostgresPersonRepo)(nil)
