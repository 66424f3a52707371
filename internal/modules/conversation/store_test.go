// README: DB-backed conversation store tests (skipped unless FARELINK_TEST_DSN is set).
package conversation

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"farelink/internal/types"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("FARELINK_TEST_DSN")
	if dsn == "" {
		t.Skip("FARELINK_TEST_DSN not set; skipping DB-backed store tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigration(ctx, db); err != nil {
		t.Fatalf("apply migration: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE flight_legs, trip_specifications, conversation_messages, conversations"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	return NewStore(db)
}

func newTestConversation(id types.ID) *Conversation {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &Conversation{
		ID:        id,
		UserID:    "test-user",
		Status:    StatusActive,
		Step:      StepInitial,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStoreCreateGetUpdate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	conv := newTestConversation("conv-a")
	if err := store.Create(ctx, conv); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.Get(ctx, "conv-a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != "test-user" || got.Step != StepInitial || got.Status != StatusActive {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if err := store.UpdateStep(ctx, "conv-a", StepConfirming, StatusActive, time.Now().UTC()); err != nil {
		t.Fatalf("update step: %v", err)
	}
	got, err = store.Get(ctx, "conv-a")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Step != StepConfirming {
		t.Fatalf("step not persisted: %s", got.Step)
	}

	if _, err := store.Get(ctx, "no-such-conv"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing conversation: expected ErrNotFound, got %v", err)
	}
	if err := store.UpdateStep(ctx, "no-such-conv", StepCollecting, StatusActive, time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing conversation: expected ErrNotFound, got %v", err)
	}
}

func TestStoreRecentUserMessages(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	conv := newTestConversation("conv-b")
	if err := store.Create(ctx, conv); err != nil {
		t.Fatalf("create: %v", err)
	}

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 7; i++ {
		user := &Message{
			ConversationID: conv.ID, Role: "user",
			Content:   fmt.Sprintf("user message %d", i),
			CreatedAt: base.Add(time.Duration(2*i) * time.Second),
		}
		if err := store.AppendMessage(ctx, user); err != nil {
			t.Fatalf("append user: %v", err)
		}
		assistant := &Message{
			ConversationID: conv.ID, Role: "assistant",
			Content:   fmt.Sprintf("assistant message %d", i),
			CreatedAt: base.Add(time.Duration(2*i+1) * time.Second),
		}
		if err := store.AppendMessage(ctx, assistant); err != nil {
			t.Fatalf("append assistant: %v", err)
		}
	}

	got, err := store.RecentUserMessages(ctx, conv.ID, 5)
	if err != nil {
		t.Fatalf("recent messages: %v", err)
	}
	// last 5 user messages, oldest first, assistant turns filtered out
	want := []string{"user message 2", "user message 3", "user message 4", "user message 5", "user message 6"}
	if len(got) != len(want) {
		t.Fatalf("got %d messages, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func applyMigration(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	path := filepath.Join(root, "migrations", "0001_init.sql")
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cleaned := stripSQLComments(string(content))
	for _, stmt := range splitSQL(cleaned) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
