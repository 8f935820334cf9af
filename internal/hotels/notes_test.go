package hotels

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestCreateNoteDefaultsAuthor(t *testing.T) {
	repo, mock := newMockRepo(t)

	created := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO notes`).
		WithArgs(pgxmock.AnyArg(), "h1", "System", "called reception, asked for manager").
		WillReturnRows(pgxmock.NewRows([]string{"id", "hotel_id", "author_name", "content", "created_at"}).
			AddRow("n1", "h1", "System", "called reception, asked for manager", created))

	note, err := repo.CreateNote(context.Background(), "h1", "", "called reception, asked for manager")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	if note.AuthorName != "System" {
		t.Errorf("author = %q, want System", note.AuthorName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateNoteRequiresContent(t *testing.T) {
	repo, _ := newMockRepo(t)

	_, err := repo.CreateNote(context.Background(), "h1", "Sarah Caller", "   ")
	if !errors.Is(err, ErrMissingContent) {
		t.Fatalf("expected ErrMissingContent, got %v", err)
	}
}

func TestListNotesNewestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, hotel_id, author_name, content, created_at\s+FROM notes WHERE hotel_id = \$1 ORDER BY created_at DESC`).
		WithArgs("h1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "hotel_id", "author_name", "content", "created_at"}).
			AddRow("n2", "h1", "Mike Sales", "sent brochure", time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)).
			AddRow("n1", "h1", "Sarah Caller", "no answer", time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)))

	notes, err := repo.ListNotes(context.Background(), "h1")
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != "n2" {
		t.Fatalf("unexpected notes: %#v", notes)
	}
}

func TestListActivity(t *testing.T) {
	repo, mock := newMockRepo(t)

	oldStatus := StatusNew
	newStatus := StatusCalling
	mock.ExpectQuery(`SELECT id, hotel_id, user_id, user_name, action, old_status, new_status, created_at\s+FROM activity_logs WHERE hotel_id = \$1 ORDER BY created_at DESC`).
		WithArgs("h1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "hotel_id", "user_id", "user_name", "action", "old_status", "new_status", "created_at"}).
			AddRow("a2", "h1", nil, "Sarah Caller", ActionStatusChanged, &oldStatus, &newStatus, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)).
			AddRow("a1", "h1", nil, "System", ActionCreated, (*Status)(nil), (*Status)(nil), time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)))

	entries, err := repo.ListActivity(context.Background(), "h1")
	if err != nil {
		t.Fatalf("ListActivity failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].OldStatus == nil || *entries[0].OldStatus != StatusNew {
		t.Errorf("unexpected old status: %v", entries[0].OldStatus)
	}
	if entries[1].OldStatus != nil {
		t.Errorf("created entry should carry no status pair")
	}
}
