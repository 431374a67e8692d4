package sink

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, KindConstraint},
		{"postgres fk violation", &pgconn.PgError{Code: "23503"}, KindConstraint},
		{"postgres bad connection", &pgconn.PgError{Code: "08006"}, KindConnectivity},
		{"mysql duplicate entry", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, KindConstraint},
		{"mysql fk violation", &mysql.MySQLError{Number: 1452, Message: "Cannot add or update"}, KindConstraint},
		{"mysql server gone", &mysql.MySQLError{Number: 2006, Message: "server has gone away"}, KindConnectivity},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, KindConstraint},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, KindConnectivity},
		{"plain error", fmt.Errorf("dial tcp: connection refused"), KindConnectivity},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := classify("sales", c.err)
			var se *Error
			if !errors.As(got, &se) {
				t.Fatalf("classify returned %T, want *Error", got)
			}
			if se.Kind != c.want {
				t.Errorf("kind = %s, want %s", se.Kind, c.want)
			}
			if se.Table != "sales" {
				t.Errorf("table = %q, want sales", se.Table)
			}
			if !errors.Is(got, c.err) && se.Err != c.err {
				t.Error("original error lost")
			}
		})
	}

	// Wrapped driver errors still classify.
	wrapped := fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: "23514"})
	var se *Error
	if errors.As(classify("products", wrapped), &se); se.Kind != KindConstraint {
		t.Error("wrapped constraint error not recognized")
	}
}
