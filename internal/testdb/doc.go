//go:build integration

// Package testdb provides utilities for database integration tests.
//
// Each test runs in its own transaction, which is rolled back when the test
// completes, so tests can run in parallel without cleaning up after themselves:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        jobStore := postgres.NewPostgresJobStore(tx, nil)
//	        companyID := testdb.MustInsertCompany(ctx, t, tx, "Acme")
//	        ...
//	    })
//	}
//
// Tests are skipped when neither DATABASE_URL nor JOBBOARD_TEST_DB_URL is set.
// The schema is migrated with the embedded goose migrations the first time a
// connection is requested.
package testdb
