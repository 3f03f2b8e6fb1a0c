package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableStringStates(t *testing.T) {
	var req UpdateStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id":1}`), &req))
	assert.False(t, req.Foto.Present, "absent key must not be marked present")
	assert.Nil(t, req.Foto.Ptr())

	req = UpdateStudentRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"foto":null}`), &req))
	assert.True(t, req.Foto.Present)
	assert.False(t, req.Foto.Valid)
	assert.Nil(t, req.Foto.Ptr())

	req = UpdateStudentRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"foto":"/uploads/a.jpg"}`), &req))
	assert.True(t, req.Foto.Present)
	assert.True(t, req.Foto.Valid)
	require.NotNil(t, req.Foto.Ptr())
	assert.Equal(t, "/uploads/a.jpg", *req.Foto.Ptr())
}

func TestUpdateStudentRequestPartialUnmarshal(t *testing.T) {
	var req UpdateStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"nama":"Siti"}`), &req))
	assert.Equal(t, int64(7), req.ID)
	require.NotNil(t, req.Nama)
	assert.Equal(t, "Siti", *req.Nama)
	assert.Nil(t, req.NIS)
	assert.Nil(t, req.Kelas)
	assert.Nil(t, req.TanggalLahir)
	assert.False(t, req.Foto.Present)
}

func TestCreateStudentRequestFotoOptional(t *testing.T) {
	payload := `{"nis":"123","nama":"Budi","kelas":"X","jenis_kelamin":"L","tanggal_lahir":"2008-05-17","alamat":"Jl. Merdeka 1","hp":"0812"}`
	var req CreateStudentRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	assert.Nil(t, req.Foto.Ptr())
	assert.Equal(t, "2008-05-17", req.TanggalLahir.String())
}
