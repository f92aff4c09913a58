package cli

import (
	"fmt"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/clinic"
	"github.com/expr-lang/expr"
)

// appointmentEnv is what a --where expression sees for one appointment.
type appointmentEnv struct {
	ID        int    `expr:"id"`
	Date      string `expr:"date"`
	StartTime string `expr:"startTime"`
	EndTime   string `expr:"endTime"`
	Status    string `expr:"status"`
	Notes     string `expr:"notes"`
	DoctorID  string `expr:"doctorId"`
	Doctor    string `expr:"doctor"`
	Specialty string `expr:"specialty"`
	PatientID string `expr:"patientId"`
	Patient   string `expr:"patient"`
}

func newAppointmentEnv(a clinic.Appointment) appointmentEnv {
	return appointmentEnv{
		ID:        a.ID,
		Date:      a.Date,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Status:    a.Status,
		Notes:     a.Notes,
		DoctorID:  a.Doctor.DoctorID(),
		Doctor:    a.Doctor.FirstName + " " + a.Doctor.LastName,
		Specialty: a.Doctor.Specialty,
		PatientID: a.Patient.ID,
		Patient:   a.Patient.FirstName + " " + a.Patient.LastName,
	}
}

// filterAppointments keeps the appointments for which where evaluates to
// true, e.g. `status == "scheduled" && date >= "2025-01-01"`. An empty
// expression keeps everything.
func filterAppointments(list []clinic.Appointment, where string) ([]clinic.Appointment, error) {
	if where == "" {
		return list, nil
	}
	program, err := expr.Compile(where, expr.Env(appointmentEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid --where expression: %w", err)
	}

	out := make([]clinic.Appointment, 0, len(list))
	for _, a := range list {
		keep, err := expr.Run(program, newAppointmentEnv(a))
		if err != nil {
			return nil, fmt.Errorf("eval --where for appointment %d: %w", a.ID, err)
		}
		if keep.(bool) {
			out = append(out, a)
		}
	}
	return out, nil
}
