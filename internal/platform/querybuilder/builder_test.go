package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("l.public_id", "l.name").
		From("leagues l").
		Where(EqFold("l.city", "Jakarta"), IsNull("l.deleted_at"), Or(Contains("l.name", "sun"), Contains("l.city", "sun"))).
		OrderBy("l.created_at DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT l.public_id, l.name FROM leagues l WHERE LOWER(l.city) = LOWER($1) AND l.deleted_at IS NULL AND (l.name ILIKE $2 OR l.city ILIKE $3) ORDER BY l.created_at DESC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "Jakarta" || args[1] != "%sun%" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_JoinAndIn(t *testing.T) {
	query, args, err := Select("t.public_id").
		From("league_teams lt").
		Join("teams t", "t.public_id = lt.team_public_id").
		LeftJoin("match_results r", "r.match_public_id = lt.id").
		Where(In("t.public_id", []any{"a", "b"}), In("t.city", nil)).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT t.public_id FROM league_teams lt JOIN teams t ON t.public_id = lt.team_public_id LEFT JOIN match_results r ON r.match_public_id = lt.id WHERE t.public_id IN ($1, $2) AND 1=0 FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestContains_EscapesWildcards(t *testing.T) {
	_, args, err := Select("id").From("teams").Where(Contains("name", "50%_off")).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if args[0] != `%50\%\_off%` {
		t.Fatalf("unexpected pattern: %v", args[0])
	}
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("matches").
		Columns("public_id", "round").
		Values("m1", 1).
		Values("m2", 2).
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO matches (public_id, round) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "m2" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertInto("matches").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected row width error")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("league_teams").
		Set("status", "ACTIVE").
		SetExpr("deleted_at", "COALESCE(?, NOW())", nil).
		Where(Eq("league_public_id", "lg"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE league_teams SET status = $1, deleted_at = COALESCE($2, NOW()) WHERE league_public_id = $3 AND deleted_at IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "ACTIVE" || args[2] != "lg" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := Update("x").ToSQL(); err == nil {
		t.Fatalf("expected missing set error")
	}
}

type sampleRow struct {
	ID        int64  `db:"id" qb:"readonly"`
	PublicID  string `db:"public_id"`
	Name      string `db:"name"`
	Ignored   string `db:"-"`
	unexposed string
}

func TestInsertModels(t *testing.T) {
	rows := []sampleRow{{PublicID: "a", Name: "A", unexposed: "x"}, {PublicID: "b", Name: "B"}}
	query, args, err := InsertModels("teams", rows, "")
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}

	wantQuery := "INSERT INTO teams (public_id, name) VALUES ($1, $2), ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != "B" {
		t.Fatalf("unexpected args: %+v", args)
	}

	single, _, err := InsertModel("teams", &rows[0], "RETURNING id")
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}
	if single != "INSERT INTO teams (public_id, name) VALUES ($1, $2) RETURNING id" {
		t.Fatalf("unexpected single query: %s", single)
	}

	if _, _, err := InsertModels[sampleRow]("teams", nil, ""); err == nil {
		t.Fatalf("expected empty models error")
	}
}
