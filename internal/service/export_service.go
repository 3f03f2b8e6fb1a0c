package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/siswa-api/internal/dto"
	"github.com/noah-isme/siswa-api/internal/models"
	"github.com/noah-isme/siswa-api/pkg/export"
	appErrors "github.com/noah-isme/siswa-api/pkg/errors"
	"github.com/noah-isme/siswa-api/pkg/storage"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
}

// ExportService renders the student roster into downloadable CSV/PDF files
// referenced by signed, expiring tokens.
type ExportService struct {
	students  studentRepository
	storage   fileStorage
	csv       csvRenderer
	pdf       pdfRenderer
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(students studentRepository, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students:  students,
		storage:   store,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		signer:    signer,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// Generate renders the full roster in the requested format and stores the file.
func (s *ExportService) Generate(ctx context.Context, req dto.ExportStudentsRequest) (*dto.ExportStudentsResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.FromValidation(err)
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	dataset := buildRosterDataset(students)

	var payload []byte
	switch req.Format {
	case "csv":
		payload, err = s.csv.Render(dataset)
	case "pdf":
		payload, err = s.pdf.Render(dataset, "Daftar Siswa")
	default:
		err = fmt.Errorf("unsupported format %s", req.Format)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	exportID := uuid.NewString()
	filename := fmt.Sprintf("students-%s-%s.%s", time.Now().UTC().Format("20060102-150405"), exportID[:8], req.Format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export url")
	}

	s.logger.Info("roster exported",
		zap.String("file", relPath),
		zap.String("format", req.Format),
		zap.Int("students", len(students)))

	return &dto.ExportStudentsResult{
		File:        relPath,
		DownloadURL: fmt.Sprintf("%s/downloadExport?token=%s", s.cfg.APIPrefix, token),
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// Open validates a download token and opens the referenced file.
func (s *ExportService) Open(token string) (*os.File, error) {
	_, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid download token")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export file not found")
	}
	return file, nil
}

func buildRosterDataset(students []models.Student) export.Dataset {
	headers := []string{"NIS", "Nama", "Kelas", "Jenis Kelamin", "Tanggal Lahir", "Alamat", "HP", "Foto"}
	rows := make([]map[string]string, 0, len(students))
	for _, st := range students {
		foto := ""
		if st.Foto != nil {
			foto = *st.Foto
		}
		rows = append(rows, map[string]string{
			"NIS":           st.NIS,
			"Nama":          st.Nama,
			"Kelas":         string(st.Kelas),
			"Jenis Kelamin": string(st.JenisKelamin),
			"Tanggal Lahir": st.TanggalLahir.String(),
			"Alamat":        st.Alamat,
			"HP":            st.HP,
			"Foto":          foto,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
