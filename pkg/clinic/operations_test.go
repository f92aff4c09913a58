package clinic

import (
	"testing"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.Len(t, c, 19)

	tests := []struct {
		key    OperationKey
		group  soap.EndpointGroup
		action string
		tag    string
	}{
		{Key(EntityDoctor, OpGetAll), soap.GroupUsers, "getAllDoctors", "doctors"},
		{Key(EntityDoctor, OpGetByID), soap.GroupUsers, "getDoctor", "doctor"},
		{Key(EntityPatient, OpGetAll), soap.GroupUsers, "getAllPatients", "patients"},
		{Key(EntityPatient, OpLogin), soap.GroupUsers, "loginPatient", "patient"},
		{Key(EntityPatient, OpCreate), soap.GroupUsers, "savePatient", ""},
		{Key(EntityAppointment, OpGetAll), soap.GroupAppointments, "getAllAppointments", "appointments"},
		{Key(EntityAppointment, OpGetByID), soap.GroupAppointments, "getAppointmentDetails", "appointment"},
		{Key(EntityAppointment, OpByPatient), soap.GroupAppointments, "getAppointmentsByPatientId", "appointments"},
	}
	for _, tt := range tests {
		op, err := c.Lookup(tt.key)
		require.NoError(t, err, tt.key.String())
		assert.Equal(t, tt.group, op.Group, tt.key.String())
		assert.Equal(t, tt.action, op.SOAPAction, tt.key.String())
		assert.Equal(t, tt.tag, op.ResultTag, tt.key.String())
	}
}

func TestCatalog_Lookup(t *testing.T) {
	_, err := DefaultCatalog().Lookup(Key(EntityDoctor, "archive"))
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestCatalog_Override(t *testing.T) {
	c := DefaultCatalog()
	key := Key(EntityAppointment, OpGetAll)

	require.NoError(t, c.Override(key, Operation{ResultTag: "appointment"}))
	op := c[key]
	assert.Equal(t, "appointment", op.ResultTag)
	assert.Equal(t, "getAllAppointments", op.SOAPAction, "empty fields keep their value")

	assert.ErrorIs(t, c.Override(Key("nurse", OpGetAll), Operation{SOAPAction: "x"}), ErrUnknownOperation)
}

func TestCatalog_CloneIsIndependent(t *testing.T) {
	base := DefaultCatalog()
	clone := base.Clone()
	require.NoError(t, clone.Override(Key(EntityDoctor, OpGetAll), Operation{SOAPAction: "listDoctors"}))

	assert.Equal(t, "getAllDoctors", base[Key(EntityDoctor, OpGetAll)].SOAPAction)
}

func TestCatalog_FindAction(t *testing.T) {
	key, op, ok := DefaultCatalog().FindAction("getAppointmentDetails")
	require.True(t, ok)
	assert.Equal(t, Key(EntityAppointment, OpGetByID), key)
	assert.Equal(t, soap.GroupAppointments, op.Group)

	_, _, ok = DefaultCatalog().FindAction("nope")
	assert.False(t, ok)
}

func TestCatalog_Keys(t *testing.T) {
	keys := DefaultCatalog().Keys()
	require.Len(t, keys, 19)
	assert.Equal(t, Key(EntityAppointment, OpByDoctor), keys[0])
	assert.Equal(t, Key(EntityPatient, OpUpdate), keys[len(keys)-1])
}

func TestParseOperationKey(t *testing.T) {
	key, err := ParseOperationKey(" doctor.getById ")
	require.NoError(t, err)
	assert.Equal(t, Key(EntityDoctor, OpGetByID), key)

	for _, bad := range []string{"", "doctor", ".getAll", "doctor."} {
		_, err := ParseOperationKey(bad)
		assert.Error(t, err, bad)
	}
}
