package clinic

import (
	"testing"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encoded parses the fragment built by fill under a <soap:op> root.
func encoded(t *testing.T, fill func(f *soap.Fragment)) *soap.Document {
	t.Helper()
	f := soap.NewFragment("op")
	fill(f)
	doc := soap.Parse(f.String())
	require.NoError(t, doc.Err())
	return doc
}

// childTags lists the tags of the root's direct children.
func childTags(t *testing.T, raw string) []string {
	t.Helper()
	doc := soap.Parse(raw)
	require.NoError(t, doc.Err())
	var tags []string
	for _, c := range doc.Root().Children() {
		tags = append(tags, c.Tag())
	}
	return tags
}

func TestDoctor_RoundTrip(t *testing.T) {
	d := Doctor{
		ID:        Ptr("d-1"),
		FirstName: "Gregory",
		LastName:  "House",
		Specialty: "Diagnostics",
		Email:     "house@ppth.org",
		Phone:     "555-0100",
	}

	doc := encoded(t, func(f *soap.Fragment) { EncodeDoctor(f.Child("doctor"), d) })
	got, ok := DoctorCodec.DecodeOne(doc, "doctor")
	require.True(t, ok)
	assert.Equal(t, d, got)
}

func TestDoctor_UnsetIDStaysNil(t *testing.T) {
	d := Doctor{FirstName: "Lisa", LastName: "Cuddy"}

	doc := encoded(t, func(f *soap.Fragment) { EncodeDoctor(f.Child("doctor"), d) })
	assert.False(t, doc.Find("doctor").Has("doctorId"))

	got, ok := DoctorCodec.DecodeOne(doc, "doctor")
	require.True(t, ok)
	assert.Nil(t, got.ID)
	assert.Equal(t, "Lisa", got.FirstName)
}

func TestDoctor_MissingFieldsDecodeEmpty(t *testing.T) {
	doc := soap.Parse(`<doctor><doctorId>7</doctorId></doctor>`)

	got, ok := DoctorCodec.DecodeOne(doc, "doctor")
	require.True(t, ok)
	require.NotNil(t, got.ID)
	assert.Equal(t, "7", *got.ID)
	assert.Equal(t, "7", got.DoctorID())
	assert.Empty(t, got.FirstName)
	assert.Empty(t, got.Specialty)
}

func TestDoctorUpdate_OnlySetFields(t *testing.T) {
	u := DoctorUpdate{ID: "d-1", Specialty: Ptr("Nephrology")}

	f := soap.NewFragment("updateDoctor")
	EncodeDoctorUpdate(f, u)

	assert.Equal(t, []string{"doctorId", "specialty"}, childTags(t, f.String()))
}

func TestPatient_RoundTrip(t *testing.T) {
	p := Patient{
		ID:          "p-1",
		FirstName:   "Ana",
		LastName:    "Ruiz",
		Email:       "ana@example.com",
		Phone:       "600 000 000",
		DateOfBirth: "1990-04-12",
	}

	doc := encoded(t, func(f *soap.Fragment) { EncodePatient(f.Child("patient"), p) })
	got, ok := PatientCodec.DecodeOne(doc, "patient")
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestPatient_DecodeNormalizesDate(t *testing.T) {
	doc := soap.Parse(`<patient><patientId>p-2</patientId><dateOfBirth>1985-07-01T00:00:00Z</dateOfBirth></patient>`)

	got, ok := PatientCodec.DecodeOne(doc, "patient")
	require.True(t, ok)
	assert.Equal(t, "1985-07-01", got.DateOfBirth)
}

func TestPatient_MalformedDateFallsBack(t *testing.T) {
	doc := soap.Parse(`<patient><patientId>p-3</patientId><dateOfBirth>yesterday</dateOfBirth></patient>`)

	got, ok := PatientCodec.DecodeOne(doc, "patient")
	require.True(t, ok)
	assert.Equal(t, "", got.DateOfBirth)
	assert.Equal(t, "p-3", got.ID)
}

func TestPatient_NewOmitsID(t *testing.T) {
	f := soap.NewFragment("savePatient")
	EncodePatient(f, Patient{FirstName: "Ana"})

	assert.NotContains(t, childTags(t, f.String()), "patientId")
}

func TestPatientUpdate_EmailOnly(t *testing.T) {
	f := soap.NewFragment("updatePatient")
	EncodePatientUpdate(f, PatientUpdate{ID: "p-1", Email: Ptr("new@example.com")})

	doc := soap.Parse(f.String())
	require.NoError(t, doc.Err())
	assert.Equal(t, []string{"patientId", "email"}, childTags(t, f.String()))
	assert.Equal(t, "new@example.com", doc.Root().Child("email").Text())

	assert.Equal(t, `<soap:updatePatient><patientId>p-1</patientId><email>new@example.com</email></soap:updatePatient>`, f.String())
}

func TestPatientUpdate_RoundTripIsLossy(t *testing.T) {
	f := soap.NewFragment("updatePatient")
	EncodePatientUpdate(f, PatientUpdate{ID: "p-1", Phone: Ptr("123")})

	got := decodePatient(soap.Parse(f.String()).Root())
	assert.Equal(t, "p-1", got.ID)
	assert.Equal(t, "123", got.Phone)
	// Omitted fields decode to their documented defaults.
	assert.Equal(t, "", got.FirstName)
	assert.Equal(t, "", got.Email)
	assert.Equal(t, "", got.DateOfBirth)
}

func TestAppointment_RoundTrip(t *testing.T) {
	a := Appointment{
		ID:        42,
		Date:      "2024-03-05",
		StartTime: "09:30",
		EndTime:   "10:00",
		Status:    StatusScheduled,
		Notes:     "Fasting <8h> & bring results",
		Doctor:    Doctor{ID: Ptr("d-1"), FirstName: "Gregory", LastName: "House", Specialty: "Diagnostics"},
		Patient:   Patient{ID: "p-1", FirstName: "Ana", LastName: "Ruiz", DateOfBirth: "1990-04-12"},
	}

	doc := encoded(t, func(f *soap.Fragment) { EncodeAppointment(f.Child("appointmentDetails"), a) })
	got, ok := AppointmentCodec.DecodeOne(doc, "appointmentDetails")
	require.True(t, ok)
	assert.Equal(t, a, got)
}

func TestAppointment_EmbeddedFieldsAreScoped(t *testing.T) {
	doc := soap.Parse(`<appointment>
  <appointmentId>7</appointmentId>
  <appointmentDate>2024-03-05T00:00:00Z</appointmentDate>
  <startTime>09:30:00</startTime>
  <endTime>10:00:00</endTime>
  <status>completed</status>
  <doctor><doctorId>d-1</doctorId><firstName>Gregory</firstName></doctor>
  <patient><patientId>p-1</patientId><firstName>Ana</firstName><dateOfBirth>1990-04-12</dateOfBirth></patient>
</appointment>`)

	got, ok := AppointmentCodec.DecodeOne(doc, "appointment")
	require.True(t, ok)
	assert.Equal(t, 7, got.ID)
	assert.Equal(t, "2024-03-05", got.Date)
	assert.Equal(t, "09:30", got.StartTime)
	assert.Equal(t, "10:00", got.EndTime)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, "", got.Notes)
	assert.Equal(t, "Gregory", got.Doctor.FirstName)
	assert.Equal(t, "Ana", got.Patient.FirstName)
	assert.Equal(t, "1990-04-12", got.Patient.DateOfBirth)
}

func TestAppointment_NonNumericID(t *testing.T) {
	doc := soap.Parse(`<appointment><appointmentId>A-17</appointmentId></appointment>`)

	got, ok := AppointmentCodec.DecodeOne(doc, "appointment")
	require.True(t, ok)
	assert.Equal(t, 0, got.ID)
	assert.Nil(t, got.Doctor.ID, "missing doctor snapshot decodes to a zero Doctor")
}

func TestAppointment_NewOmitsIDKeepsNotes(t *testing.T) {
	f := soap.NewFragment("createAppointment")
	EncodeAppointment(f, Appointment{Date: "2024-03-05"})

	doc := soap.Parse(f.String())
	require.NoError(t, doc.Err())
	assert.Nil(t, doc.Root().Child("appointmentId"))
	require.NotNil(t, doc.Root().Child("notes"))
	assert.Equal(t, "", doc.Root().Child("notes").Text())
	assert.NotNil(t, doc.Root().Child("doctor"))
	assert.NotNil(t, doc.Root().Child("patient"))
}
