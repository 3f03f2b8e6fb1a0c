package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/siswa-api/internal/dto"
	"github.com/noah-isme/siswa-api/internal/service"
	appErrors "github.com/noah-isme/siswa-api/pkg/errors"
	"github.com/noah-isme/siswa-api/pkg/response"
)

// StudentHandler exposes the student operations under their RPC names.
type StudentHandler struct {
	students *service.StudentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// Healthcheck godoc
// @Summary Service healthcheck
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /rpc/healthcheck [get]
func (h *StudentHandler) Healthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Create godoc
// @Summary Create a student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /rpc/createStudent [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// List godoc
// @Summary List all students ordered by name
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rpc/getStudents [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// GetByID godoc
// @Summary Get a student by id
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.StudentIDRequest true "Student id"
// @Success 200 {object} response.Envelope "data absent when no student has the id"
// @Router /rpc/getStudentById [post]
func (h *StudentHandler) GetByID(c *gin.Context) {
	req, ok := bindIDRequest(c)
	if !ok {
		return
	}
	student, err := h.students.Get(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if student == nil {
		response.JSON(c, http.StatusOK, nil)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Update godoc
// @Summary Partially update a student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.UpdateStudentRequest true "Fields to change; omitted fields stay untouched"
// @Success 200 {object} response.Envelope "data absent when no student has the id"
// @Router /rpc/updateStudent [post]
func (h *StudentHandler) Update(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if student == nil {
		response.JSON(c, http.StatusOK, nil)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Delete godoc
// @Summary Delete a student and clean up its local photo
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.StudentIDRequest true "Student id"
// @Success 200 {object} response.Envelope
// @Router /rpc/deleteStudent [post]
func (h *StudentHandler) Delete(c *gin.Context) {
	req, ok := bindIDRequest(c)
	if !ok {
		return
	}
	result, err := h.students.Delete(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

func bindIDRequest(c *gin.Context) (dto.StudentIDRequest, bool) {
	var req dto.StudentIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return req, false
	}
	if req.ID == 0 {
		e := appErrors.Clone(appErrors.ErrValidation, "invalid payload")
		e.Fields = []string{`id: failed "required" constraint`}
		response.Error(c, e)
		return req, false
	}
	return req, true
}
