package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	_ "modernc.org/sqlite"

	"taskdeck/internal/model"
)

// ErrNotFound is returned for updates/deletes of ids the store never saw (or
// already deleted).
var ErrNotFound = errors.New("todo not found")

// DB is the record store's persistence layer.
type DB struct {
	db *sql.DB
}

// OpenDB opens (creating if needed) the todos database at path and brings the
// schema up to date.
func OpenDB(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error { return d.db.Close() }

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		due_date TEXT NOT NULL,
		title TEXT NOT NULL,
		assignee TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create todos: %w", err)
	}

	// completed and favorite were added after launch; older databases may
	// still be missing the columns.
	for _, col := range []string{"completed", "favorite"} {
		if err := ensureBoolColumn(ctx, db, col); err != nil {
			return err
		}
	}
	return nil
}

func ensureBoolColumn(ctx context.Context, db *sql.DB, name string) error {
	rows, err := db.QueryContext(ctx, `PRAGMA table_info(todos)`)
	if err != nil {
		return fmt.Errorf("table_info: %w", err)
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var (
			cid     int
			colName string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dflt, &pk); err != nil {
			return err
		}
		if colName == name {
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if found {
		return nil
	}
	_, err = db.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE todos ADD COLUMN %s INTEGER NOT NULL DEFAULT 0`, name))
	if err != nil {
		return fmt.Errorf("add column %s: %w", name, err)
	}
	return nil
}

// sortColumns whitelists ORDER BY targets. Everything else is rejected before
// assembling SQL.
var sortColumns = map[string]string{
	"id":       "id",
	"due_date": "due_date",
	"title":    "title",
	"assignee": "assignee",
}

func ValidListSort(sort string) bool { return sortColumns[sort] != "" }

// ListTodos returns tasks in the ordering contract the client relies on:
// uncompleted rows first, then the requested column and direction, ties
// broken by id ascending. assignee filters by substring when non-empty.
func (d *DB) ListTodos(ctx context.Context, sortField, order, assignee string) ([]model.Task, error) {
	col := sortColumns[sortField]
	if col == "" {
		return nil, fmt.Errorf("invalid sort field %q", sortField)
	}
	dir := "ASC"
	switch order {
	case "asc":
	case "desc":
		dir = "DESC"
	default:
		return nil, fmt.Errorf("invalid order %q", order)
	}

	query := fmt.Sprintf(
		`SELECT id, due_date, title, assignee, completed, favorite
		 FROM todos %s ORDER BY completed ASC, %s %s, id ASC`,
		whereAssignee(assignee), col, dir,
	)
	var args []any
	if assignee != "" {
		args = append(args, "%"+assignee+"%")
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.DueDate, &t.Title, &t.Assignee, &t.Completed, &t.Favorite); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func whereAssignee(assignee string) string {
	if assignee == "" {
		return ""
	}
	return "WHERE assignee LIKE ?"
}

func (d *DB) GetTodo(ctx context.Context, id int64) (model.Task, error) {
	var t model.Task
	err := d.db.QueryRowContext(ctx,
		`SELECT id, due_date, title, assignee, completed, favorite FROM todos WHERE id = ?`, id,
	).Scan(&t.ID, &t.DueDate, &t.Title, &t.Assignee, &t.Completed, &t.Favorite)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, ErrNotFound
	}
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (d *DB) CreateTodo(ctx context.Context, t model.Task) (model.Task, error) {
	res, err := d.db.ExecContext(ctx,
		`INSERT INTO todos (due_date, title, assignee, completed, favorite) VALUES (?, ?, ?, ?, ?)`,
		t.DueDate, t.Title, t.Assignee, t.Completed, t.Favorite,
	)
	if err != nil {
		return model.Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Task{}, err
	}
	t.ID = id
	return t, nil
}

func (d *DB) UpdateTodo(ctx context.Context, id int64, t model.Task) (model.Task, error) {
	res, err := d.db.ExecContext(ctx,
		`UPDATE todos SET due_date = ?, title = ?, assignee = ?, completed = ?, favorite = ? WHERE id = ?`,
		t.DueDate, t.Title, t.Assignee, t.Completed, t.Favorite, id,
	)
	if err != nil {
		return model.Task{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Task{}, err
	}
	if n == 0 {
		return model.Task{}, ErrNotFound
	}
	t.ID = id
	return t, nil
}

func (d *DB) DeleteTodo(ctx context.Context, id int64) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var (
	seedAssignees = []string{"Tanaka", "Sato", "Suzuki", "Yamada", "Kato"}
	seedTitles    = []string{
		"仕様書レビュー",
		"UI調整",
		"API実装",
		"バグ修正",
		"テスト追加",
		"ドキュメント更新",
	}
)

// Seed fills an empty database with 100 deterministic sample todos spread
// over −10..+30 days around today. A database that already has rows is left
// untouched, so seeding is safe to run on every start.
func (d *DB) Seed(ctx context.Context, today time.Time) error {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(42))
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for i := 0; i < 100; i++ {
		due := today.AddDate(0, 0, rng.Intn(41)-10).Format(model.DateLayout)
		title := fmt.Sprintf("%s #%d", seedTitles[i%len(seedTitles)], i+1)
		assignee := seedAssignees[i%len(seedAssignees)]
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO todos (due_date, title, assignee, completed, favorite) VALUES (?, ?, ?, 0, 0)`,
			due, title, assignee,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
