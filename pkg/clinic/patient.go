package clinic

import (
	"context"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
)

const (
	tagPatient     = "patient"
	tagPatientID   = "patientId"
	tagDateOfBirth = "dateOfBirth"
)

func decodePatient(el *soap.Element) Patient {
	dob, _ := NormalizeDate(el.TextOf(tagDateOfBirth))
	return Patient{
		ID:          el.TextOf(tagPatientID),
		FirstName:   el.TextOf(tagFirstName),
		LastName:    el.TextOf(tagLastName),
		Email:       el.TextOf(tagEmail),
		Phone:       el.TextOf(tagPhone),
		DateOfBirth: dob,
	}
}

// EncodePatient appends p's fields to f. patientId is omitted when empty,
// as it is for a patient that has not been saved yet.
func EncodePatient(f *soap.Fragment, p Patient) {
	if p.ID != "" {
		f.Add(tagPatientID, p.ID)
	}
	f.Add(tagFirstName, p.FirstName).
		Add(tagLastName, p.LastName).
		Add(tagEmail, p.Email).
		Add(tagPhone, p.Phone).
		Add(tagDateOfBirth, p.DateOfBirth)
}

// EncodePatientUpdate appends patientId and every field set in u.
func EncodePatientUpdate(f *soap.Fragment, u PatientUpdate) {
	f.Add(tagPatientID, u.ID).
		AddIf(tagFirstName, u.FirstName).
		AddIf(tagLastName, u.LastName).
		AddIf(tagEmail, u.Email).
		AddIf(tagPhone, u.Phone).
		AddIf(tagDateOfBirth, u.DateOfBirth)
}

// PatientService runs patient operations.
type PatientService struct {
	c *Client
}

// GetAll lists every patient.
func (s *PatientService) GetAll(ctx context.Context) Result[[]Patient] {
	return many(ctx, s.c, Key(EntityPatient, OpGetAll), PatientCodec, nil)
}

// GetByID fetches one patient.
func (s *PatientService) GetByID(ctx context.Context, id string) Result[Patient] {
	return one(ctx, s.c, Key(EntityPatient, OpGetByID), PatientCodec, func(f *soap.Fragment) {
		f.Add(tagPatientID, id)
	})
}

// Register creates a patient account with the given password.
func (s *PatientService) Register(ctx context.Context, p Patient, password string) Result[struct{}] {
	return write(ctx, s.c, Key(EntityPatient, OpCreate), func(f *soap.Fragment) {
		EncodePatient(f.Child(tagPatient), p)
		f.Add(tagPassword, password)
	})
}

// Update applies a partial update.
func (s *PatientService) Update(ctx context.Context, u PatientUpdate) Result[struct{}] {
	return write(ctx, s.c, Key(EntityPatient, OpUpdate), func(f *soap.Fragment) {
		EncodePatientUpdate(f, u)
	})
}

// Delete removes a patient.
func (s *PatientService) Delete(ctx context.Context, id string) Result[struct{}] {
	return write(ctx, s.c, Key(EntityPatient, OpDelete), func(f *soap.Fragment) {
		f.Add(tagPatientID, id)
	})
}

// Login checks a patient's credentials and returns the matching record.
// Rejected credentials are reported as NotFound.
func (s *PatientService) Login(ctx context.Context, email, password string) Result[Patient] {
	return one(ctx, s.c, Key(EntityPatient, OpLogin), PatientCodec, func(f *soap.Fragment) {
		f.Add(tagEmail, email).Add(tagPassword, password)
	})
}
