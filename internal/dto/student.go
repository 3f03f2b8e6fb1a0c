package dto

import (
	"encoding/json"

	"github.com/noah-isme/siswa-api/internal/models"
)

// NullableString distinguishes three JSON states for a field: key absent,
// explicit null, and a set string value. Update payloads need all three
// because a missing foto key keeps the stored photo while an explicit null
// clears it.
type NullableString struct {
	Present bool
	Valid   bool
	Value   string
}

// UnmarshalJSON marks the field as present and records whether it carried a
// value or an explicit null.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(data) == "null" {
		n.Valid = false
		n.Value = ""
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON renders the value or null. Absent fields marshal as null too;
// requests are the only DTOs using this type so the asymmetry is harmless.
func (n NullableString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr converts the nullable into the model representation: nil for null or
// absent, otherwise a pointer to the value.
func (n NullableString) Ptr() *string {
	if !n.Present || !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// CreateStudentRequest is the createStudent operation input. Every field but
// foto is required; foto may be omitted or explicitly null.
type CreateStudentRequest struct {
	NIS          string              `json:"nis" validate:"required,min=1"`
	Nama         string              `json:"nama" validate:"required,min=1"`
	Kelas        models.Kelas        `json:"kelas" validate:"required,oneof=X XI XII"`
	JenisKelamin models.JenisKelamin `json:"jenis_kelamin" validate:"required,oneof=L P"`
	TanggalLahir models.DateOnly     `json:"tanggal_lahir" validate:"required"`
	Alamat       string              `json:"alamat" validate:"required,min=1"`
	HP           string              `json:"hp" validate:"required,min=1"`
	Foto         NullableString      `json:"foto"`
}

// UpdateStudentRequest is the updateStudent operation input. Only id is
// required; a field left out of the payload keeps its stored value. Foto is
// the one field where explicit null is meaningful (it clears the photo), so
// it is modeled with NullableString instead of a plain pointer.
type UpdateStudentRequest struct {
	ID           int64                `json:"id" validate:"required"`
	NIS          *string              `json:"nis" validate:"omitempty,min=1"`
	Nama         *string              `json:"nama" validate:"omitempty,min=1"`
	Kelas        *models.Kelas        `json:"kelas" validate:"omitempty,oneof=X XI XII"`
	JenisKelamin *models.JenisKelamin `json:"jenis_kelamin" validate:"omitempty,oneof=L P"`
	TanggalLahir *models.DateOnly     `json:"tanggal_lahir"`
	Alamat       *string              `json:"alamat" validate:"omitempty,min=1"`
	HP           *string              `json:"hp" validate:"omitempty,min=1"`
	Foto         NullableString       `json:"foto"`
}

// StudentIDRequest carries the id for getStudentById and deleteStudent.
type StudentIDRequest struct {
	ID int64 `json:"id" validate:"required"`
}

// DeleteStudentResult is the deleteStudent outcome. A missing id yields
// success=false as an ordinary response, never an error.
type DeleteStudentResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ExportStudentsRequest selects the roster export format.
type ExportStudentsRequest struct {
	Format string `json:"format" validate:"required,oneof=csv pdf"`
}

// ExportStudentsResult points the client at the rendered roster file.
type ExportStudentsResult struct {
	File        string `json:"file"`
	DownloadURL string `json:"download_url"`
	ExpiresAt   string `json:"expires_at"`
}
