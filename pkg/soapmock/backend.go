package soapmock

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/clinic"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
	"github.com/google/uuid"
)

// Element names read from requests.
const (
	tagDoctor             = "doctor"
	tagDoctorID           = "doctorId"
	tagPatient            = "patient"
	tagPatientID          = "patientId"
	tagAppointmentID      = "appointmentId"
	tagAppointmentDetails = "appointmentDetails"
	tagEmail              = "email"
	tagPassword           = "password"
	tagFirstName          = "firstName"
	tagLastName           = "lastName"
	tagSpecialty          = "specialty"
	tagPhone              = "phone"
	tagDateOfBirth        = "dateOfBirth"
)

type doctorRecord struct {
	clinic.Doctor
	password string
}

type patientRecord struct {
	clinic.Patient
	password string
}

// ClinicBackend is an in-memory clinic backend. Register exposes it on a
// Server under the SOAP actions of its catalog.
type ClinicBackend struct {
	mu           sync.RWMutex
	doctors      map[string]*doctorRecord
	patients     map[string]*patientRecord
	appointments map[int]clinic.Appointment
	nextAppt     int

	catalog clinic.Catalog
	newID   func() string
}

// BackendOption configures a ClinicBackend.
type BackendOption func(*ClinicBackend)

// WithCatalog serves the actions of c instead of the default catalog.
func WithCatalog(c clinic.Catalog) BackendOption {
	return func(b *ClinicBackend) {
		if c != nil {
			b.catalog = c
		}
	}
}

// WithIDGenerator sets how doctor and patient ids are assigned.
func WithIDGenerator(fn func() string) BackendOption {
	return func(b *ClinicBackend) {
		if fn != nil {
			b.newID = fn
		}
	}
}

// NewClinicBackend creates an empty backend.
func NewClinicBackend(opts ...BackendOption) *ClinicBackend {
	b := &ClinicBackend{
		doctors:      make(map[string]*doctorRecord),
		patients:     make(map[string]*patientRecord),
		appointments: make(map[int]clinic.Appointment),
		catalog:      clinic.DefaultCatalog(),
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// handler answers one catalog operation.
type handler func(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault)

// Register installs a handler on s for every catalog operation.
func (b *ClinicBackend) Register(s *Server) {
	handlers := map[clinic.OperationKey]handler{
		clinic.Key(clinic.EntityDoctor, clinic.OpGetAll):  b.listDoctors,
		clinic.Key(clinic.EntityDoctor, clinic.OpGetByID): b.getDoctor,
		clinic.Key(clinic.EntityDoctor, clinic.OpCreate):  b.saveDoctor,
		clinic.Key(clinic.EntityDoctor, clinic.OpUpdate):  b.updateDoctor,
		clinic.Key(clinic.EntityDoctor, clinic.OpDelete):  b.deleteDoctor,
		clinic.Key(clinic.EntityDoctor, clinic.OpLogin):   b.loginDoctor,

		clinic.Key(clinic.EntityPatient, clinic.OpGetAll):  b.listPatients,
		clinic.Key(clinic.EntityPatient, clinic.OpGetByID): b.getPatient,
		clinic.Key(clinic.EntityPatient, clinic.OpCreate):  b.savePatient,
		clinic.Key(clinic.EntityPatient, clinic.OpUpdate):  b.updatePatient,
		clinic.Key(clinic.EntityPatient, clinic.OpDelete):  b.deletePatient,
		clinic.Key(clinic.EntityPatient, clinic.OpLogin):   b.loginPatient,

		clinic.Key(clinic.EntityAppointment, clinic.OpGetAll):    b.listAppointments,
		clinic.Key(clinic.EntityAppointment, clinic.OpGetByID):   b.getAppointment,
		clinic.Key(clinic.EntityAppointment, clinic.OpCreate):    b.createAppointment,
		clinic.Key(clinic.EntityAppointment, clinic.OpUpdate):    b.updateAppointment,
		clinic.Key(clinic.EntityAppointment, clinic.OpDelete):    b.deleteAppointment,
		clinic.Key(clinic.EntityAppointment, clinic.OpByDoctor):  b.appointmentsByDoctor,
		clinic.Key(clinic.EntityAppointment, clinic.OpByPatient): b.appointmentsByPatient,
	}
	for _, key := range b.catalog.Keys() {
		h, ok := handlers[key]
		if !ok {
			continue
		}
		op := b.catalog[key]
		s.Handle(op.Group, op.SOAPAction, func(_ context.Context, req *Request) (*soap.Fragment, *soap.Fault) {
			return h(req, op)
		})
	}
}

func response(op clinic.Operation) *soap.Fragment {
	return soap.NewFragment(op.SOAPAction + "Response")
}

// Doctors

func (b *ClinicBackend) listDoctors(_ *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f := response(op)
	for _, d := range b.sortedDoctors() {
		clinic.EncodeDoctor(f.Child(op.ResultTag), d.Doctor)
	}
	return f, nil
}

func (b *ClinicBackend) getDoctor(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f := response(op)
	if d, ok := b.doctors[req.Body.TextOf(tagDoctorID)]; ok {
		clinic.EncodeDoctor(f.Child(op.ResultTag), d.Doctor)
	}
	return f, nil
}

func (b *ClinicBackend) saveDoctor(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	el := req.Body.Child(tagDoctor)
	if el == nil {
		return nil, clientFault("missing doctor element")
	}
	d := clinic.DoctorCodec.Decode(el)
	password := req.Body.TextOf(tagPassword)

	b.mu.Lock()
	defer b.mu.Unlock()
	id, fault := b.addDoctor(d, password)
	if fault != nil {
		return nil, fault
	}
	return response(op).Add(tagDoctorID, id), nil
}

// addDoctor stores d. The caller holds the write lock.
func (b *ClinicBackend) addDoctor(d clinic.Doctor, password string) (string, *soap.Fault) {
	if fault := checkAccount(d.Email, password); fault != nil {
		return "", fault
	}
	if b.doctorByEmail(d.Email) != nil {
		return "", clientFault("email already registered: " + d.Email)
	}
	id := d.DoctorID()
	if id == "" {
		id = b.newID()
	} else if _, taken := b.doctors[id]; taken {
		return "", clientFault("doctor already exists: " + id)
	}
	d.ID = &id
	b.doctors[id] = &doctorRecord{Doctor: d, password: password}
	return id, nil
}

func (b *ClinicBackend) updateDoctor(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	id := req.Body.TextOf(tagDoctorID)
	u := clinic.DoctorUpdate{
		ID:        id,
		FirstName: optional(req.Body, tagFirstName),
		LastName:  optional(req.Body, tagLastName),
		Specialty: optional(req.Body, tagSpecialty),
		Email:     optional(req.Body, tagEmail),
		Phone:     optional(req.Body, tagPhone),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.doctors[id]
	if !ok {
		return nil, clientFault("doctor not found: " + id)
	}
	if u.Email != nil && *u.Email != rec.Email {
		if other := b.doctorByEmail(*u.Email); other != nil && other != rec {
			return nil, clientFault("email already registered: " + *u.Email)
		}
	}
	apply(&rec.FirstName, u.FirstName)
	apply(&rec.LastName, u.LastName)
	apply(&rec.Specialty, u.Specialty)
	apply(&rec.Email, u.Email)
	apply(&rec.Phone, u.Phone)
	return response(op), nil
}

func (b *ClinicBackend) deleteDoctor(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	id := req.Body.TextOf(tagDoctorID)
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.doctors[id]; !ok {
		return nil, clientFault("doctor not found: " + id)
	}
	delete(b.doctors, id)
	return response(op), nil
}

func (b *ClinicBackend) loginDoctor(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f := response(op)
	d := b.doctorByEmail(req.Body.TextOf(tagEmail))
	if d != nil && d.password == req.Body.TextOf(tagPassword) {
		clinic.EncodeDoctor(f.Child(op.ResultTag), d.Doctor)
	}
	return f, nil
}

func (b *ClinicBackend) doctorByEmail(email string) *doctorRecord {
	for _, d := range b.doctors {
		if strings.EqualFold(d.Email, email) {
			return d
		}
	}
	return nil
}

func (b *ClinicBackend) sortedDoctors() []*doctorRecord {
	out := make([]*doctorRecord, 0, len(b.doctors))
	for _, d := range b.doctors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].DoctorID() < out[j].DoctorID()
	})
	return out
}

// Patients

func (b *ClinicBackend) listPatients(_ *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f := response(op)
	for _, p := range b.sortedPatients() {
		clinic.EncodePatient(f.Child(op.ResultTag), p.Patient)
	}
	return f, nil
}

func (b *ClinicBackend) getPatient(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f := response(op)
	if p, ok := b.patients[req.Body.TextOf(tagPatientID)]; ok {
		clinic.EncodePatient(f.Child(op.ResultTag), p.Patient)
	}
	return f, nil
}

func (b *ClinicBackend) savePatient(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	el := req.Body.Child(tagPatient)
	if el == nil {
		return nil, clientFault("missing patient element")
	}
	p := clinic.PatientCodec.Decode(el)
	password := req.Body.TextOf(tagPassword)

	b.mu.Lock()
	defer b.mu.Unlock()
	id, fault := b.addPatient(p, password)
	if fault != nil {
		return nil, fault
	}
	return response(op).Add(tagPatientID, id), nil
}

// addPatient stores p. The caller holds the write lock.
func (b *ClinicBackend) addPatient(p clinic.Patient, password string) (string, *soap.Fault) {
	if fault := checkAccount(p.Email, password); fault != nil {
		return "", fault
	}
	if b.patientByEmail(p.Email) != nil {
		return "", clientFault("email already registered: " + p.Email)
	}
	if p.ID == "" {
		p.ID = b.newID()
	} else if _, taken := b.patients[p.ID]; taken {
		return "", clientFault("patient already exists: " + p.ID)
	}
	b.patients[p.ID] = &patientRecord{Patient: p, password: password}
	return p.ID, nil
}

func (b *ClinicBackend) updatePatient(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	id := req.Body.TextOf(tagPatientID)
	u := clinic.PatientUpdate{
		ID:          id,
		FirstName:   optional(req.Body, tagFirstName),
		LastName:    optional(req.Body, tagLastName),
		Email:       optional(req.Body, tagEmail),
		Phone:       optional(req.Body, tagPhone),
		DateOfBirth: optional(req.Body, tagDateOfBirth),
	}
	if u.DateOfBirth != nil {
		dob, ok := clinic.NormalizeDate(*u.DateOfBirth)
		if !ok && *u.DateOfBirth != "" {
			return nil, clientFault("invalid dateOfBirth: " + *u.DateOfBirth)
		}
		u.DateOfBirth = &dob
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.patients[id]
	if !ok {
		return nil, clientFault("patient not found: " + id)
	}
	if u.Email != nil && *u.Email != rec.Email {
		if other := b.patientByEmail(*u.Email); other != nil && other != rec {
			return nil, clientFault("email already registered: " + *u.Email)
		}
	}
	apply(&rec.FirstName, u.FirstName)
	apply(&rec.LastName, u.LastName)
	apply(&rec.Email, u.Email)
	apply(&rec.Phone, u.Phone)
	apply(&rec.DateOfBirth, u.DateOfBirth)
	return response(op), nil
}

func (b *ClinicBackend) deletePatient(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	id := req.Body.TextOf(tagPatientID)
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.patients[id]; !ok {
		return nil, clientFault("patient not found: " + id)
	}
	delete(b.patients, id)
	return response(op), nil
}

func (b *ClinicBackend) loginPatient(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f := response(op)
	p := b.patientByEmail(req.Body.TextOf(tagEmail))
	if p != nil && p.password == req.Body.TextOf(tagPassword) {
		clinic.EncodePatient(f.Child(op.ResultTag), p.Patient)
	}
	return f, nil
}

func (b *ClinicBackend) patientByEmail(email string) *patientRecord {
	for _, p := range b.patients {
		if strings.EqualFold(p.Email, email) {
			return p
		}
	}
	return nil
}

func (b *ClinicBackend) sortedPatients() []*patientRecord {
	out := make([]*patientRecord, 0, len(b.patients))
	for _, p := range b.patients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Appointments

func (b *ClinicBackend) listAppointments(_ *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	return b.appointmentList(op, func(clinic.Appointment) bool { return true }), nil
}

func (b *ClinicBackend) appointmentsByDoctor(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	id := req.Body.TextOf(tagDoctorID)
	return b.appointmentList(op, func(a clinic.Appointment) bool { return a.Doctor.DoctorID() == id }), nil
}

func (b *ClinicBackend) appointmentsByPatient(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	id := req.Body.TextOf(tagPatientID)
	return b.appointmentList(op, func(a clinic.Appointment) bool { return a.Patient.ID == id }), nil
}

func (b *ClinicBackend) appointmentList(op clinic.Operation, keep func(clinic.Appointment) bool) *soap.Fragment {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]int, 0, len(b.appointments))
	for id := range b.appointments {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	f := response(op)
	for _, id := range ids {
		if a := b.appointments[id]; keep(a) {
			clinic.EncodeAppointment(f.Child(op.ResultTag), b.refresh(a))
		}
	}
	return f
}

func (b *ClinicBackend) getAppointment(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f := response(op)
	if a, ok := b.appointments[clinic.ParseID(req.Body.TextOf(tagAppointmentID))]; ok {
		clinic.EncodeAppointment(f.Child(op.ResultTag), b.refresh(a))
	}
	return f, nil
}

func (b *ClinicBackend) createAppointment(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	a, fault := appointmentDetails(req)
	if fault != nil {
		return nil, fault
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id, fault := b.addAppointment(a)
	if fault != nil {
		return nil, fault
	}
	return response(op).Add(tagAppointmentID, strconv.Itoa(id)), nil
}

// addAppointment assigns the next id to a and stores it. The caller holds
// the write lock.
func (b *ClinicBackend) addAppointment(a clinic.Appointment) (int, *soap.Fault) {
	if fault := b.checkParticipants(a); fault != nil {
		return 0, fault
	}
	if a.Status == "" {
		a.Status = clinic.StatusScheduled
	}
	b.nextAppt++
	a.ID = b.nextAppt
	b.appointments[a.ID] = a
	return a.ID, nil
}

func (b *ClinicBackend) updateAppointment(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	a, fault := appointmentDetails(req)
	if fault != nil {
		return nil, fault
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.appointments[a.ID]; !ok {
		return nil, clientFault(fmt.Sprintf("appointment not found: %d", a.ID))
	}
	if fault := b.checkParticipants(a); fault != nil {
		return nil, fault
	}
	if a.Status == "" {
		a.Status = clinic.StatusScheduled
	}
	b.appointments[a.ID] = a
	return response(op), nil
}

func (b *ClinicBackend) deleteAppointment(req *Request, op clinic.Operation) (*soap.Fragment, *soap.Fault) {
	id := clinic.ParseID(req.Body.TextOf(tagAppointmentID))
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.appointments[id]; !ok {
		return nil, clientFault(fmt.Sprintf("appointment not found: %d", id))
	}
	delete(b.appointments, id)
	return response(op), nil
}

func appointmentDetails(req *Request) (clinic.Appointment, *soap.Fault) {
	el := req.Body.Child(tagAppointmentDetails)
	if el == nil {
		return clinic.Appointment{}, clientFault("missing appointmentDetails element")
	}
	a := clinic.AppointmentCodec.Decode(el)
	if a.Date == "" {
		return clinic.Appointment{}, clientFault("invalid appointmentDate: " + el.TextOf("appointmentDate"))
	}
	return a, nil
}

// checkParticipants verifies that the doctor and patient of a exist. The
// caller holds the lock.
func (b *ClinicBackend) checkParticipants(a clinic.Appointment) *soap.Fault {
	if _, ok := b.doctors[a.Doctor.DoctorID()]; !ok {
		return clientFault("doctor not found: " + a.Doctor.DoctorID())
	}
	if _, ok := b.patients[a.Patient.ID]; !ok {
		return clientFault("patient not found: " + a.Patient.ID)
	}
	return nil
}

// refresh replaces the snapshots in a with the stored records when they
// still exist.
func (b *ClinicBackend) refresh(a clinic.Appointment) clinic.Appointment {
	if d, ok := b.doctors[a.Doctor.DoctorID()]; ok {
		a.Doctor = d.Doctor
	}
	if p, ok := b.patients[a.Patient.ID]; ok {
		a.Patient = p.Patient
	}
	return a
}

// Counts returns how many doctors, patients and appointments are stored.
func (b *ClinicBackend) Counts() (doctors, patients, appointments int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.doctors), len(b.patients), len(b.appointments)
}

func checkAccount(email, password string) *soap.Fault {
	if _, err := mail.ParseAddress(email); err != nil {
		return clientFault("invalid email: " + email)
	}
	if password == "" {
		return clientFault("password is required")
	}
	return nil
}

// optional returns the text of the child tag, or nil when it is absent.
func optional(el *soap.Element, tag string) *string {
	c := el.Child(tag)
	if c == nil {
		return nil
	}
	v := c.Text()
	return &v
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
