package models

import "time"

// Kelas is the class/grade level of a student.
type Kelas string

// JenisKelamin is the registered gender of a student.
type JenisKelamin string

const (
	KelasX   Kelas = "X"
	KelasXI  Kelas = "XI"
	KelasXII Kelas = "XII"

	JenisKelaminL JenisKelamin = "L"
	JenisKelaminP JenisKelamin = "P"
)

// Student represents a learner profile kept by the administration office.
// NIS is the natural key and stays unique across all stored students.
type Student struct {
	ID           int64        `db:"id" json:"id"`
	NIS          string       `db:"nis" json:"nis"`
	Nama         string       `db:"nama" json:"nama"`
	Kelas        Kelas        `db:"kelas" json:"kelas"`
	JenisKelamin JenisKelamin `db:"jenis_kelamin" json:"jenis_kelamin"`
	TanggalLahir DateOnly     `db:"tanggal_lahir" json:"tanggal_lahir"`
	Alamat       string       `db:"alamat" json:"alamat"`
	HP           string       `db:"hp" json:"hp"`
	Foto         *string      `db:"foto" json:"foto"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}
