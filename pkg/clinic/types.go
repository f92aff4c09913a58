package clinic

// Doctor is a doctor record. ID is nil until the backend has assigned one.
type Doctor struct {
	ID        *string `json:"doctorId" yaml:"doctorId"`
	FirstName string  `json:"firstName" yaml:"firstName"`
	LastName  string  `json:"lastName" yaml:"lastName"`
	Specialty string  `json:"specialty" yaml:"specialty"`
	Email     string  `json:"email" yaml:"email"`
	Phone     string  `json:"phone" yaml:"phone"`
}

// DoctorID returns the id or "" when unset.
func (d Doctor) DoctorID() string {
	if d.ID == nil {
		return ""
	}
	return *d.ID
}

// Patient is a patient record. DateOfBirth is YYYY-MM-DD.
type Patient struct {
	ID          string `json:"patientId" yaml:"patientId"`
	FirstName   string `json:"firstName" yaml:"firstName"`
	LastName    string `json:"lastName" yaml:"lastName"`
	Email       string `json:"email" yaml:"email"`
	Phone       string `json:"phone" yaml:"phone"`
	DateOfBirth string `json:"dateOfBirth" yaml:"dateOfBirth"`
}

// Appointment is an appointment with denormalized snapshots of its doctor
// and patient. Date is YYYY-MM-DD; StartTime and EndTime are HH:MM.
type Appointment struct {
	ID        int     `json:"appointmentId" yaml:"appointmentId"`
	Date      string  `json:"appointmentDate" yaml:"appointmentDate"`
	StartTime string  `json:"startTime" yaml:"startTime"`
	EndTime   string  `json:"endTime" yaml:"endTime"`
	Status    string  `json:"status" yaml:"status"`
	Notes     string  `json:"notes" yaml:"notes"`
	Doctor    Doctor  `json:"doctor" yaml:"doctor"`
	Patient   Patient `json:"patient" yaml:"patient"`
}

// Conventional appointment statuses. The backend does not enforce them.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// DoctorUpdate is a partial update. Nil fields are left unchanged.
type DoctorUpdate struct {
	ID        string  `json:"doctorId"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// PatientUpdate is a partial update. Nil fields are left unchanged.
type PatientUpdate struct {
	ID          string  `json:"patientId"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
}

// Ptr returns a pointer to s, for filling update patches.
func Ptr(s string) *string {
	return &s
}
