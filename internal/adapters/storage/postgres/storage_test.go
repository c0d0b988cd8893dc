package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"guess-the-guild/internal/adapters/storage/postgres/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPostgresStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockDB := &MockDB{
			QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
				if len(args) != 2 || args[0] != "player:42" || args[1] != "score" {
					return &MockRow{ScanFunc: func(dest ...any) error {
						return fmt.Errorf("unexpected args: %v", args)
					}}
				}
				return &MockRow{
					ScanFunc: func(dest ...any) error {
						*dest[0].(*string) = "17"
						return nil
					},
				}
			},
		}

		store := &PostgresStore{q: db.New(mockDB)}
		value, ok, err := store.Get(ctx, "player:42", "score")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !ok || value != "17" {
			t.Errorf("Expected (17, true), got (%q, %v)", value, ok)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		mockDB := &MockDB{
			QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
				return &MockRow{
					ScanFunc: func(dest ...any) error {
						return pgx.ErrNoRows
					},
				}
			},
		}

		store := &PostgresStore{q: db.New(mockDB)}
		value, ok, err := store.Get(ctx, "player:42", "record")
		if err != nil {
			t.Fatalf("Missing key should not be an error, got %v", err)
		}
		if ok || value != "" {
			t.Errorf("Expected missing key, got (%q, %v)", value, ok)
		}
	})

	t.Run("Error", func(t *testing.T) {
		mockDB := &MockDB{
			QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
				return &MockRow{
					ScanFunc: func(dest ...any) error {
						return errors.New("connection reset")
					},
				}
			},
		}

		store := &PostgresStore{q: db.New(mockDB)}
		_, _, err := store.Get(ctx, "player:42", "score")
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		if !strings.Contains(err.Error(), "player:42/score") {
			t.Errorf("Expected error to name the key, got %v", err)
		}
	})
}

func TestPostgresStore_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		mockDB := &MockDB{
			ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				gotSQL = sql
				gotArgs = args
				return pgconn.NewCommandTag("INSERT 0 1"), nil
			},
		}

		store := &PostgresStore{q: db.New(mockDB)}
		if err := store.Set(ctx, "player:42", "record", "9"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if !strings.Contains(gotSQL, "ON CONFLICT") {
			t.Error("Expected upsert statement")
		}
		if len(gotArgs) != 3 || gotArgs[0] != "player:42" || gotArgs[1] != "record" || gotArgs[2] != "9" {
			t.Errorf("Unexpected args: %v", gotArgs)
		}
	})

	t.Run("Error", func(t *testing.T) {
		mockDB := &MockDB{
			ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("db error")
			},
		}

		store := &PostgresStore{q: db.New(mockDB)}
		if err := store.Set(ctx, "player:42", "score", "1"); err == nil {
			t.Fatal("Expected error, got nil")
		}
	})
}

func TestQueries_CreateSchema(t *testing.T) {
	var gotSQL string
	mockDB := &MockDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			gotSQL = sql
			return pgconn.NewCommandTag("CREATE TABLE"), nil
		},
	}

	if err := db.New(mockDB).CreateSchema(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(gotSQL, "CREATE TABLE IF NOT EXISTS kv_entries") {
		t.Errorf("Unexpected schema statement: %s", gotSQL)
	}
}

func TestPostgresStore_CloseWithoutPool(t *testing.T) {
	store := &PostgresStore{}
	store.Close()
}
