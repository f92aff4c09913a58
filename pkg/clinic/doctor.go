package clinic

import (
	"context"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
)

// Doctor field tags.
const (
	tagDoctor    = "doctor"
	tagDoctorID  = "doctorId"
	tagFirstName = "firstName"
	tagLastName  = "lastName"
	tagSpecialty = "specialty"
	tagEmail     = "email"
	tagPhone     = "phone"
	tagPassword  = "password"
)

func decodeDoctor(el *soap.Element) Doctor {
	d := Doctor{
		FirstName: el.TextOf(tagFirstName),
		LastName:  el.TextOf(tagLastName),
		Specialty: el.TextOf(tagSpecialty),
		Email:     el.TextOf(tagEmail),
		Phone:     el.TextOf(tagPhone),
	}
	if id := el.Find(tagDoctorID); id != nil {
		v := id.Text()
		d.ID = &v
	}
	return d
}

// EncodeDoctor appends d's fields to f. doctorId is omitted when unset.
func EncodeDoctor(f *soap.Fragment, d Doctor) {
	f.AddIf(tagDoctorID, d.ID).
		Add(tagFirstName, d.FirstName).
		Add(tagLastName, d.LastName).
		Add(tagEmail, d.Email).
		Add(tagPhone, d.Phone).
		Add(tagSpecialty, d.Specialty)
}

// EncodeDoctorUpdate appends doctorId and every field set in u.
func EncodeDoctorUpdate(f *soap.Fragment, u DoctorUpdate) {
	f.Add(tagDoctorID, u.ID).
		AddIf(tagFirstName, u.FirstName).
		AddIf(tagLastName, u.LastName).
		AddIf(tagSpecialty, u.Specialty).
		AddIf(tagEmail, u.Email).
		AddIf(tagPhone, u.Phone)
}

// DoctorService runs doctor operations.
type DoctorService struct {
	c *Client
}

// GetAll lists every doctor.
func (s *DoctorService) GetAll(ctx context.Context) Result[[]Doctor] {
	return many(ctx, s.c, Key(EntityDoctor, OpGetAll), DoctorCodec, nil)
}

// GetByID fetches one doctor.
func (s *DoctorService) GetByID(ctx context.Context, id string) Result[Doctor] {
	return one(ctx, s.c, Key(EntityDoctor, OpGetByID), DoctorCodec, func(f *soap.Fragment) {
		f.Add(tagDoctorID, id)
	})
}

// Create registers a doctor account. Any ID on d is sent as given.
func (s *DoctorService) Create(ctx context.Context, d Doctor, password string) Result[struct{}] {
	return write(ctx, s.c, Key(EntityDoctor, OpCreate), func(f *soap.Fragment) {
		EncodeDoctor(f.Child(tagDoctor), d)
		f.Add(tagPassword, password)
	})
}

// Update applies a partial update.
func (s *DoctorService) Update(ctx context.Context, u DoctorUpdate) Result[struct{}] {
	return write(ctx, s.c, Key(EntityDoctor, OpUpdate), func(f *soap.Fragment) {
		EncodeDoctorUpdate(f, u)
	})
}

// Delete removes a doctor.
func (s *DoctorService) Delete(ctx context.Context, id string) Result[struct{}] {
	return write(ctx, s.c, Key(EntityDoctor, OpDelete), func(f *soap.Fragment) {
		f.Add(tagDoctorID, id)
	})
}

// Login checks a doctor's credentials and returns the matching record.
// Rejected credentials are reported as NotFound.
func (s *DoctorService) Login(ctx context.Context, email, password string) Result[Doctor] {
	return one(ctx, s.c, Key(EntityDoctor, OpLogin), DoctorCodec, func(f *soap.Fragment) {
		f.Add(tagEmail, email).Add(tagPassword, password)
	})
}
