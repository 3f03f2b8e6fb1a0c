package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/siswa-api/internal/dto"
	"github.com/noah-isme/siswa-api/internal/models"
	"github.com/noah-isme/siswa-api/internal/repository"
	appErrors "github.com/noah-isme/siswa-api/pkg/errors"
)

const listCacheKey = "students:list"

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ExistsByNIS(ctx context.Context, nis string, excludeID int64) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

type listCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string)
}

type photoStore interface {
	Remove(path string) error
}

// StudentService implements the student record-keeping rules: NIS uniqueness,
// presence-keyed partial update, and best-effort photo cleanup on delete.
// Missing records are reported as values, not errors.
type StudentService struct {
	repo      studentRepository
	photos    photoStore
	cache     listCache
	cacheTTL  time.Duration
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service. cache may be nil, which
// disables roster caching; metrics may be nil.
func NewStudentService(repo studentRepository, photos photoStore, cache listCache, cacheTTL time.Duration, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		repo:      repo,
		photos:    photos,
		cache:     cache,
		cacheTTL:  cacheTTL,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// Create registers a new student. The NIS pre-check gives a descriptive
// conflict; the table's unique constraint covers the remaining race window.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.FromValidation(err)
	}
	exists, err := s.repo.ExistsByNIS(ctx, req.NIS, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate nis")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("student with nis %s already exists", req.NIS))
	}
	student := &models.Student{
		NIS:          req.NIS,
		Nama:         req.Nama,
		Kelas:        req.Kelas,
		JenisKelamin: req.JenisKelamin,
		TanggalLahir: req.TanggalLahir,
		Alamat:       req.Alamat,
		HP:           req.HP,
		Foto:         req.Foto.Ptr(),
	}
	start := time.Now()
	err = s.repo.Create(ctx, student)
	s.metrics.ObserveDBQuery("students_create", time.Since(start))
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("student with nis %s already exists", req.NIS))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.invalidateList(ctx)
	return student, nil
}

// List returns all students ordered by nama, optionally served from cache.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	if s.cache != nil {
		cached := make([]models.Student, 0)
		if err := s.cache.Get(ctx, listCacheKey, &cached); err == nil {
			s.metrics.RecordCacheOperation(true)
			return cached, nil
		}
		s.metrics.RecordCacheOperation(false)
	}
	start := time.Now()
	students, err := s.repo.List(ctx)
	s.metrics.ObserveDBQuery("students_list", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, listCacheKey, students, s.cacheTTL); err != nil {
			s.logger.Warn("cache roster failed", zap.Error(err))
		}
	}
	return students, nil
}

// Get returns the student with the given id, or (nil, nil) when no record
// has that id.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	start := time.Now()
	student, err := s.repo.FindByID(ctx, id)
	s.metrics.ObserveDBQuery("students_find_by_id", time.Since(start))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Update applies only the fields present in the request to the stored
// record. A missing id yields (nil, nil). Changing nis to a value held by a
// different student is a conflict; re-asserting the current nis is not.
func (s *StudentService) Update(ctx context.Context, req dto.UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.FromValidation(err)
	}
	student, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if req.NIS != nil {
		exists, err := s.repo.ExistsByNIS(ctx, *req.NIS, req.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate nis")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("nis %s already used by another student", *req.NIS))
		}
		student.NIS = *req.NIS
	}
	if req.Nama != nil {
		student.Nama = *req.Nama
	}
	if req.Kelas != nil {
		student.Kelas = *req.Kelas
	}
	if req.JenisKelamin != nil {
		student.JenisKelamin = *req.JenisKelamin
	}
	if req.TanggalLahir != nil {
		student.TanggalLahir = *req.TanggalLahir
	}
	if req.Alamat != nil {
		student.Alamat = *req.Alamat
	}
	if req.HP != nil {
		student.HP = *req.HP
	}
	if req.Foto.Present {
		student.Foto = req.Foto.Ptr()
	}
	start := time.Now()
	err = s.repo.Update(ctx, student)
	s.metrics.ObserveDBQuery("students_update", time.Since(start))
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("nis %s already used by another student", student.NIS))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	s.invalidateList(ctx)
	return student, nil
}

// Delete removes the student record. A photo stored as a local path is
// removed best-effort afterwards; cleanup failure never alters the outcome.
func (s *StudentService) Delete(ctx context.Context, id int64) (*dto.DeleteStudentResult, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return &dto.DeleteStudentResult{
				Success: false,
				Message: fmt.Sprintf("student with id %d not found", id),
			}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	start := time.Now()
	err = s.repo.Delete(ctx, id)
	s.metrics.ObserveDBQuery("students_delete", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	if student.Foto != nil && !strings.HasPrefix(*student.Foto, "http") {
		if s.photos == nil {
			s.logger.Warn("photo store unavailable, skipping cleanup", zap.String("foto", *student.Foto))
		} else if err := s.photos.Remove(*student.Foto); err != nil {
			s.logger.Warn("photo cleanup failed",
				zap.Int64("student_id", id),
				zap.String("foto", *student.Foto),
				zap.Error(err))
		}
	}
	s.invalidateList(ctx)
	return &dto.DeleteStudentResult{
		Success: true,
		Message: fmt.Sprintf("student with id %d deleted successfully", id),
	}, nil
}

func (s *StudentService) invalidateList(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, listCacheKey)
	}
}
