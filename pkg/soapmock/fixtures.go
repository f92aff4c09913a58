package soapmock

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/clinic"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ErrNoFixtures is returned when a fixture pattern matches no file.
var ErrNoFixtures = errors.New("no fixture files matched")

// DoctorFixture is a doctor account to seed.
type DoctorFixture struct {
	clinic.Doctor `yaml:",inline"`
	Password      string `yaml:"password"`
}

// PatientFixture is a patient account to seed.
type PatientFixture struct {
	clinic.Patient `yaml:",inline"`
	Password       string `yaml:"password"`
}

// Fixtures is the content of one or more fixture files.
type Fixtures struct {
	Doctors      []DoctorFixture      `yaml:"doctors"`
	Patients     []PatientFixture     `yaml:"patients"`
	Appointments []clinic.Appointment `yaml:"appointments"`
}

// LoadFixtures reads every YAML file matching pattern, in lexical order,
// and concatenates their records. Patterns follow doublestar syntax, e.g.
// "testdata/fixtures/**/*.yaml".
func LoadFixtures(pattern string) (*Fixtures, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid fixture pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFixtures, pattern)
	}
	sort.Strings(matches)

	out := &Fixtures{}
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixtures: %w", err)
		}
		var f Fixtures
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		out.Doctors = append(out.Doctors, f.Doctors...)
		out.Patients = append(out.Patients, f.Patients...)
		out.Appointments = append(out.Appointments, f.Appointments...)
	}
	return out, nil
}

// Seed stores the fixture records. Doctors and patients are added before
// appointments, which must reference them by id. Appointment ids in the
// fixtures are ignored and reassigned in order.
func (b *ClinicBackend) Seed(f *Fixtures) error {
	if f == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, d := range f.Doctors {
		if _, fault := b.addDoctor(d.Doctor, d.Password); fault != nil {
			return fmt.Errorf("seed doctor %s: %s", d.Email, fault.Message)
		}
	}
	for _, p := range f.Patients {
		if _, fault := b.addPatient(p.Patient, p.Password); fault != nil {
			return fmt.Errorf("seed patient %s: %s", p.Email, fault.Message)
		}
	}
	for i, a := range f.Appointments {
		if date, ok := clinic.NormalizeDate(a.Date); ok {
			a.Date = date
		} else {
			return fmt.Errorf("seed appointment %d: invalid date %q", i+1, a.Date)
		}
		a.StartTime = clinic.NormalizeClock(a.StartTime)
		a.EndTime = clinic.NormalizeClock(a.EndTime)
		if _, fault := b.addAppointment(a); fault != nil {
			return fmt.Errorf("seed appointment %d: %s", i+1, fault.Message)
		}
	}
	return nil
}
