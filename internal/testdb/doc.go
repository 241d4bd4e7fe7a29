// Package testdb provides helpers for tests that need a real PostgreSQL
// database.
//
// Tests call Open, which skips the test unless DATABASE_URL is set, applies
// the embedded migrations once per process and closes the pool when the test
// ends. Most tests then run inside WithTx so every change is rolled back:
//
//	func TestSomething(t *testing.T) {
//		db := testdb.Open(t)
//		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//			users := postgres.NewPostgresUserStore(tx, nil)
//			...
//		})
//	}
package testdb
