package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectTablePresent(mock sqlmock.Sqlmock, table string) {
	mock.ExpectQuery("information_schema\\.tables").WithArgs(table).
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow(table))
}

func expectTableAbsent(mock sqlmock.Sqlmock, table string) {
	mock.ExpectQuery("information_schema\\.tables").WithArgs(table).
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
}

func TestEnsureSchemaSkipsExistingTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	expectTablePresent(mock, "users")
	expectTablePresent(mock, "transport_options")
	expectTablePresent(mock, "bookings")
	mock.ExpectQuery("information_schema\\.columns").WithArgs("bookings", "luggage_count").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("luggage_count"))

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("ensure schema error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchemaCreatesMissingTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	expectTableAbsent(mock, "users")
	expectTableAbsent(mock, "transport_options")
	expectTableAbsent(mock, "bookings")
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS transport_options").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("bookings", "luggage_count").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("luggage_count"))

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("ensure schema error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchemaBackfillsLuggageColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	expectTablePresent(mock, "users")
	expectTablePresent(mock, "transport_options")
	expectTablePresent(mock, "bookings")
	mock.ExpectQuery("information_schema\\.columns").WithArgs("bookings", "luggage_count").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectExec("ALTER TABLE bookings ADD COLUMN luggage_count").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("ensure schema error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
