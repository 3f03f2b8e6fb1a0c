package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/siswa-api/internal/models"
)

func newStudentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "nis", "nama", "kelas", "jenis_kelamin", "tanggal_lahir", "alamat", "hp", "foto", "created_at", "updated_at"})
}

func TestStudentRepositoryListOrdersByNama(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := studentRows().
		AddRow(2, "002", "Ahmad", "X", "L", "2008-01-01", "Jl. A", "0811", nil, time.Now(), time.Now()).
		AddRow(1, "001", "Budi", "XI", "L", "2007-06-15", "Jl. B", "0812", "uploads/budi.jpg", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nis, nama, kelas, jenis_kelamin, tanggal_lahir, alamat, hp, foto, created_at, updated_at FROM students ORDER BY nama ASC")).
		WillReturnRows(rows)

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Ahmad", students[0].Nama)
	assert.Equal(t, "Budi", students[1].Nama)
	assert.Nil(t, students[0].Foto)
	require.NotNil(t, students[1].Foto)
	assert.Equal(t, "uploads/budi.jpg", *students[1].Foto)
	assert.Equal(t, "2008-01-01", students[0].TanggalLahir.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListEmpty(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("SELECT .* FROM students ORDER BY nama ASC").WillReturnRows(studentRows())

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, students)
	assert.Len(t, students, 0)
}

func TestStudentRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("SELECT .* FROM students WHERE id = \\$1").
		WithArgs(int64(99999)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 99999)
	assert.Equal(t, sql.ErrNoRows, err)
}

func TestStudentRepositoryExistsByNIS(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE nis = $1 LIMIT 1")).
		WithArgs("123").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByNIS(context.Background(), "123", 0)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStudentRepositoryExistsByNISExcludesOwnID(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE nis = $1 AND id <> $2 LIMIT 1")).
		WithArgs("123", int64(7)).
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.ExistsByNIS(context.Background(), "123", 7)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStudentRepositoryCreateAssignsIDAndTimestamps(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("INSERT INTO students").
		WithArgs("123", "Budi", "X", "L", sqlmock.AnyArg(), "Jl. Merdeka 1", "0812", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	student := &models.Student{
		NIS:          "123",
		Nama:         "Budi",
		Kelas:        models.KelasX,
		JenisKelamin: models.JenisKelaminL,
		TanggalLahir: models.NewDateOnly(2008, time.May, 17),
		Alamat:       "Jl. Merdeka 1",
		HP:           "0812",
	}
	err := repo.Create(context.Background(), student)
	require.NoError(t, err)
	assert.Equal(t, int64(42), student.ID)
	assert.False(t, student.CreatedAt.IsZero())
	assert.Equal(t, student.CreatedAt, student.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateAdvancesUpdatedAt(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("UPDATE students SET").
		WithArgs("123", "Budi", "XI", "L", sqlmock.AnyArg(), "Jl. Merdeka 1", "0812", nil, sqlmock.AnyArg(), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	before := time.Now().UTC().Add(-time.Minute)
	student := &models.Student{
		ID:           42,
		NIS:          "123",
		Nama:         "Budi",
		Kelas:        models.KelasXI,
		JenisKelamin: models.JenisKelaminL,
		TanggalLahir: models.NewDateOnly(2008, time.May, 17),
		Alamat:       "Jl. Merdeka 1",
		HP:           "0812",
		UpdatedAt:    before,
	}
	err := repo.Update(context.Background(), student)
	require.NoError(t, err)
	assert.True(t, student.UpdatedAt.After(before))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("DELETE FROM students WHERE id = \\$1").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(sql.ErrNoRows))
	assert.False(t, IsUniqueViolation(nil))
}
