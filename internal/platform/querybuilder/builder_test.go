package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "payload").
		From("recommendations").
		Where(Eq("account_id", int64(7)), Eq("gameweek", 3), IsNull("deleted_at")).
		OrderBy("created_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, payload FROM recommendations WHERE account_id = $1 AND gameweek = $2 AND deleted_at IS NULL ORDER BY created_at DESC LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(7) || args[1] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("recommendations").
		Columns("public_id", "gameweek").
		Values("r1", 4).
		Values("r2", 5).
		Suffix("ON CONFLICT (public_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO recommendations (public_id, gameweek) VALUES ($1, $2), ($3, $4) ON CONFLICT (public_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "r1" || args[3] != 5 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		PublicID  string    `db:"public_id"`
		Gameweek  int       `db:"gameweek"`
		Ignored   string    `db:"-"`
		CreatedAt time.Time `db:"created_at"`
		internal  string
	}

	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := InsertModel("recommendations", row{PublicID: "r1", Gameweek: 2, CreatedAt: now, internal: "x"}, "")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}

	wantQuery := "INSERT INTO recommendations (public_id, gameweek, created_at) VALUES ($1, $2, $3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != now {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestColumns(t *testing.T) {
	type row struct {
		ID        int64      `db:"id"`
		Payload   []byte     `db:"payload,omitempty"`
		DeletedAt *time.Time `db:"deleted_at"`
		Note      string
	}

	cols, err := Columns(&row{})
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	want := []string{"id", "payload", "deleted_at"}
	if len(cols) != len(want) {
		t.Fatalf("unexpected columns: %v", cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("column %d: want %s got %s", i, want[i], cols[i])
		}
	}

	if _, err := Columns(42); err == nil {
		t.Fatal("expected error for non-struct model")
	}
	var nilRow *row
	if _, err := InsertModel("recommendations", nilRow, ""); err == nil {
		t.Fatal("expected error for nil model")
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("recommendations").
		Columns("public_id", "gameweek").
		Values("r1").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for short row")
	}
}
