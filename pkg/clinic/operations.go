package clinic

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
)

// Entity names a record family.
type Entity string

const (
	EntityDoctor      Entity = "doctor"
	EntityPatient     Entity = "patient"
	EntityAppointment Entity = "appointment"
)

// Entities lists every entity in display order.
var Entities = []Entity{EntityDoctor, EntityPatient, EntityAppointment}

// Operation names.
const (
	OpGetAll    = "getAll"
	OpGetByID   = "getById"
	OpCreate    = "create"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpLogin     = "login"
	OpByDoctor  = "byDoctor"
	OpByPatient = "byPatient"
)

// ErrUnknownOperation is returned for a key the catalog does not hold.
var ErrUnknownOperation = errors.New("unknown operation")

// OperationKey identifies a caller-facing operation.
type OperationKey struct {
	Entity Entity
	Name   string
}

// Key builds an OperationKey.
func Key(entity Entity, name string) OperationKey {
	return OperationKey{Entity: entity, Name: name}
}

func (k OperationKey) String() string {
	return string(k.Entity) + "." + k.Name
}

// ParseOperationKey parses "entity.name", e.g. "doctor.getById".
func ParseOperationKey(s string) (OperationKey, error) {
	entity, name, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok || entity == "" || name == "" {
		return OperationKey{}, fmt.Errorf("invalid operation key %q: want entity.name", s)
	}
	return Key(Entity(entity), name), nil
}

// Operation is how one caller-facing operation maps onto the backend.
type Operation struct {
	Group      soap.EndpointGroup `json:"group" yaml:"group"`
	SOAPAction string             `json:"soapAction" yaml:"soapAction"`
	// ResultTag is the element holding the result record, or each record
	// of a list. Empty for writes.
	ResultTag string `json:"resultTag,omitempty" yaml:"resultTag,omitempty"`
}

// Catalog resolves operation keys. The zero value is empty; use
// DefaultCatalog.
type Catalog map[OperationKey]Operation

// DefaultCatalog returns the operations exposed by the clinic backend.
// List operations use the plural wrapper tag the backend repeats per item.
func DefaultCatalog() Catalog {
	users, appts := soap.GroupUsers, soap.GroupAppointments
	return Catalog{
		Key(EntityDoctor, OpGetAll):  {users, "getAllDoctors", "doctors"},
		Key(EntityDoctor, OpGetByID): {users, "getDoctor", "doctor"},
		Key(EntityDoctor, OpCreate):  {users, "saveDoctor", ""},
		Key(EntityDoctor, OpUpdate):  {users, "updateDoctor", ""},
		Key(EntityDoctor, OpDelete):  {users, "deleteDoctor", ""},
		Key(EntityDoctor, OpLogin):   {users, "loginDoctor", "doctor"},

		Key(EntityPatient, OpGetAll):  {users, "getAllPatients", "patients"},
		Key(EntityPatient, OpGetByID): {users, "getPatientById", "patient"},
		Key(EntityPatient, OpCreate):  {users, "savePatient", ""},
		Key(EntityPatient, OpUpdate):  {users, "updatePatient", ""},
		Key(EntityPatient, OpDelete):  {users, "deletePatient", ""},
		Key(EntityPatient, OpLogin):   {users, "loginPatient", "patient"},

		Key(EntityAppointment, OpGetAll):    {appts, "getAllAppointments", "appointments"},
		Key(EntityAppointment, OpGetByID):   {appts, "getAppointmentDetails", "appointment"},
		Key(EntityAppointment, OpCreate):    {appts, "createAppointment", ""},
		Key(EntityAppointment, OpUpdate):    {appts, "updateAppointment", ""},
		Key(EntityAppointment, OpDelete):    {appts, "deleteAppointment", ""},
		Key(EntityAppointment, OpByDoctor):  {appts, "getAppointmentsByDoctorId", "appointments"},
		Key(EntityAppointment, OpByPatient): {appts, "getAppointmentsByPatientId", "appointments"},
	}
}

// Lookup returns the operation for key.
func (c Catalog) Lookup(key OperationKey) (Operation, error) {
	op, ok := c[key]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %s", ErrUnknownOperation, key)
	}
	return op, nil
}

// FindAction returns the key whose SOAP action is action.
func (c Catalog) FindAction(action string) (OperationKey, Operation, bool) {
	for _, key := range c.Keys() {
		if op := c[key]; op.SOAPAction == action {
			return key, op, true
		}
	}
	return OperationKey{}, Operation{}, false
}

// Override replaces the non-empty fields of the existing entry for key.
// Keys the catalog does not know are rejected.
func (c Catalog) Override(key OperationKey, op Operation) error {
	cur, err := c.Lookup(key)
	if err != nil {
		return err
	}
	if op.Group != "" {
		cur.Group = op.Group
	}
	if op.SOAPAction != "" {
		cur.SOAPAction = op.SOAPAction
	}
	if op.ResultTag != "" {
		cur.ResultTag = op.ResultTag
	}
	c[key] = cur
	return nil
}

// Clone returns a copy that can be overridden independently.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Keys returns the keys sorted by entity, then name.
func (c Catalog) Keys() []OperationKey {
	keys := make([]OperationKey, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Entity != keys[j].Entity {
			return keys[i].Entity < keys[j].Entity
		}
		return keys[i].Name < keys[j].Name
	})
	return keys
}
