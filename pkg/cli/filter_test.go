package cli

import (
	"testing"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/clinic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAppointments() []clinic.Appointment {
	return []clinic.Appointment{
		{ID: 1, Date: "2025-03-10", Status: clinic.StatusScheduled,
			Doctor:  clinic.Doctor{ID: clinic.Ptr("d-1"), LastName: "Ruiz", Specialty: "Cardiology"},
			Patient: clinic.Patient{ID: "p-1", FirstName: "Carla", LastName: "Gomez"}},
		{ID: 2, Date: "2025-03-20", Status: clinic.StatusCompleted,
			Doctor:  clinic.Doctor{ID: clinic.Ptr("d-2"), LastName: "Diaz", Specialty: "Dermatology"},
			Patient: clinic.Patient{ID: "p-1", FirstName: "Carla", LastName: "Gomez"}},
		{ID: 3, Date: "2025-04-01", Status: clinic.StatusCancelled, Notes: "moved",
			Doctor:  clinic.Doctor{ID: clinic.Ptr("d-1"), LastName: "Ruiz", Specialty: "Cardiology"},
			Patient: clinic.Patient{ID: "p-2", FirstName: "Diego", LastName: "Lopez"}},
	}
}

func TestFilterAppointments(t *testing.T) {
	tests := []struct {
		where string
		want  []int
	}{
		{"", []int{1, 2, 3}},
		{`status == "completed"`, []int{2}},
		{`date >= "2025-03-15"`, []int{2, 3}},
		{`doctorId == "d-1" && status != "cancelled"`, []int{1}},
		{`specialty startsWith "Derm"`, []int{2}},
		{`patient == "Diego Lopez"`, []int{3}},
		{`notes contains "move"`, []int{3}},
		{`id > 5`, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.where, func(t *testing.T) {
			got, err := filterAppointments(sampleAppointments(), tt.where)
			require.NoError(t, err)
			ids := make([]int, 0, len(got))
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterAppointments_Invalid(t *testing.T) {
	for _, where := range []string{`status ==`, `unknownField == 1`, `id + 1`} {
		_, err := filterAppointments(sampleAppointments(), where)
		assert.Error(t, err, where)
	}
}
