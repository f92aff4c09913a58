package clinic

import (
	"context"
	"strconv"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
)

const (
	tagAppointmentDetails = "appointmentDetails"
	tagAppointmentID      = "appointmentId"
	tagAppointmentDate    = "appointmentDate"
	tagStartTime          = "startTime"
	tagEndTime            = "endTime"
	tagStatus             = "status"
	tagNotes              = "notes"
)

// decodeAppointment reads the appointment's own fields from el and the
// embedded snapshots from its doctor and patient children. Lookups for the
// shared field names are scoped to those children.
func decodeAppointment(el *soap.Element) Appointment {
	date, _ := NormalizeDate(el.TextOf(tagAppointmentDate))
	a := Appointment{
		ID:        ParseID(el.TextOf(tagAppointmentID)),
		Date:      date,
		StartTime: NormalizeClock(el.TextOf(tagStartTime)),
		EndTime:   NormalizeClock(el.TextOf(tagEndTime)),
		Status:    el.TextOf(tagStatus),
		Notes:     el.TextOf(tagNotes),
	}
	if d := el.Find(tagDoctor); d != nil {
		a.Doctor = decodeDoctor(d)
	}
	if p := el.Find(tagPatient); p != nil {
		a.Patient = decodePatient(p)
	}
	return a
}

// EncodeAppointment appends a's fields and its doctor and patient
// snapshots to f. appointmentId is omitted when zero; notes is always sent.
func EncodeAppointment(f *soap.Fragment, a Appointment) {
	if a.ID != 0 {
		f.Add(tagAppointmentID, strconv.Itoa(a.ID))
	}
	f.Add(tagAppointmentDate, a.Date).
		Add(tagStartTime, a.StartTime).
		Add(tagEndTime, a.EndTime).
		Add(tagStatus, a.Status).
		Add(tagNotes, a.Notes)
	EncodeDoctor(f.Child(tagDoctor), a.Doctor)
	EncodePatient(f.Child(tagPatient), a.Patient)
}

// AppointmentService runs appointment operations.
type AppointmentService struct {
	c *Client
}

// GetAll lists every appointment.
func (s *AppointmentService) GetAll(ctx context.Context) Result[[]Appointment] {
	return many(ctx, s.c, Key(EntityAppointment, OpGetAll), AppointmentCodec, nil)
}

// GetByID fetches one appointment with its doctor and patient.
func (s *AppointmentService) GetByID(ctx context.Context, id int) Result[Appointment] {
	return one(ctx, s.c, Key(EntityAppointment, OpGetByID), AppointmentCodec, func(f *soap.Fragment) {
		f.Add(tagAppointmentID, strconv.Itoa(id))
	})
}

// Create books a new appointment. a.ID is ignored.
func (s *AppointmentService) Create(ctx context.Context, a Appointment) Result[struct{}] {
	a.ID = 0
	return write(ctx, s.c, Key(EntityAppointment, OpCreate), func(f *soap.Fragment) {
		EncodeAppointment(f.Child(tagAppointmentDetails), a)
	})
}

// Update replaces the appointment identified by a.ID.
func (s *AppointmentService) Update(ctx context.Context, a Appointment) Result[struct{}] {
	return write(ctx, s.c, Key(EntityAppointment, OpUpdate), func(f *soap.Fragment) {
		EncodeAppointment(f.Child(tagAppointmentDetails), a)
	})
}

// Delete removes an appointment.
func (s *AppointmentService) Delete(ctx context.Context, id int) Result[struct{}] {
	return write(ctx, s.c, Key(EntityAppointment, OpDelete), func(f *soap.Fragment) {
		f.Add(tagAppointmentID, strconv.Itoa(id))
	})
}

// ByDoctor lists the appointments of one doctor.
func (s *AppointmentService) ByDoctor(ctx context.Context, doctorID string) Result[[]Appointment] {
	return many(ctx, s.c, Key(EntityAppointment, OpByDoctor), AppointmentCodec, func(f *soap.Fragment) {
		f.Add(tagDoctorID, doctorID)
	})
}

// ByPatient lists the appointments of one patient.
func (s *AppointmentService) ByPatient(ctx context.Context, patientID string) Result[[]Appointment] {
	return many(ctx, s.c, Key(EntityAppointment, OpByPatient), AppointmentCodec, func(f *soap.Fragment) {
		f.Add(tagPatientID, patientID)
	})
}
