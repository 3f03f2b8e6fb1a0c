package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/siswa-api/internal/dto"
	"github.com/noah-isme/siswa-api/internal/models"
	appErrors "github.com/noah-isme/siswa-api/pkg/errors"
	"github.com/noah-isme/siswa-api/pkg/storage"
)

func newExportService(t *testing.T, repo *mockStudentRepo) *ExportService {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	return NewExportService(repo, store, signer, ExportConfig{APIPrefix: "/rpc"}, validator.New(), zap.NewNop())
}

func TestExportServiceGenerateCSV(t *testing.T) {
	repo := newMockStudentRepo()
	foto := "https://cdn.example.com/budi.jpg"
	repo.students[1] = models.Student{
		ID:           1,
		NIS:          "12345",
		Nama:         "Budi Santoso",
		Kelas:        models.KelasX,
		JenisKelamin: models.JenisKelaminL,
		TanggalLahir: models.NewDateOnly(2008, time.May, 17),
		Alamat:       "Jl. Merdeka 1",
		HP:           "0812",
		Foto:         &foto,
	}
	svc := newExportService(t, repo)

	result, err := svc.Generate(context.Background(), dto.ExportStudentsRequest{Format: "csv"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.File, ".csv"))
	assert.Contains(t, result.DownloadURL, "/rpc/downloadExport?token=")
	assert.NotEmpty(t, result.ExpiresAt)

	token := strings.TrimPrefix(result.DownloadURL, "/rpc/downloadExport?token=")
	file, err := svc.Open(token)
	require.NoError(t, err)
	defer file.Close()

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Budi Santoso")
	assert.Contains(t, string(content), "2008-05-17")
}

func TestExportServiceGeneratePDF(t *testing.T) {
	repo := newMockStudentRepo()
	svc := newExportService(t, repo)

	result, err := svc.Generate(context.Background(), dto.ExportStudentsRequest{Format: "pdf"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.File, ".pdf"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	repo := newMockStudentRepo()
	svc := newExportService(t, repo)

	_, err := svc.Generate(context.Background(), dto.ExportStudentsRequest{Format: "xlsx"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceOpenRejectsBadToken(t *testing.T) {
	repo := newMockStudentRepo()
	svc := newExportService(t, repo)

	_, err := svc.Open("not.a.valid.token")
	require.Error(t, err)
}
