package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/cli/internal/output"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/clinic"
	"github.com/spf13/cobra"
)

var appointmentsCmd = &cobra.Command{
	Use:     "appointments",
	Aliases: []string{"appointment", "appt"},
	Short:   "Manage appointments",
}

var (
	listDoctor  string
	listPatient string
	listWhere   string
)

var appointmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List appointments",
	Long: `List appointments, optionally only those of one doctor or one patient.

--where filters the result with an expression over the fields id, date,
startTime, endTime, status, notes, doctorId, doctor, specialty, patientId and
patient, for example:

  clinicctl appointments list --where 'status == "scheduled" && date >= "2025-03-11"'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listDoctor != "" && listPatient != "" {
			return errors.New("--doctor and --patient cannot be combined")
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		var res clinic.Result[[]clinic.Appointment]
		switch {
		case listDoctor != "":
			res = client.Appointments().ByDoctor(cmd.Context(), listDoctor)
		case listPatient != "":
			res = client.Appointments().ByPatient(cmd.Context(), listPatient)
		default:
			res = client.Appointments().GetAll(cmd.Context())
		}
		if err := resultError("list appointments", res); err != nil {
			return err
		}

		list, err := filterAppointments(res.Value, listWhere)
		if err != nil {
			return err
		}
		return printResult(list, func() { printAppointments(list) })
	},
}

var appointmentsGetCmd = &cobra.Command{
	Use:   "get <appointment-id>",
	Short: "Show one appointment with its doctor and patient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAppointmentID(args[0])
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		res := client.Appointments().GetByID(cmd.Context(), id)
		if err := resultError("appointment "+args[0], res); err != nil {
			return err
		}
		return printResult(res.Value, func() { printAppointmentDetails(res.Value) })
	},
}

var (
	apptDate    string
	apptStart   string
	apptEnd     string
	apptStatus  string
	apptNotes   string
	apptDoctor  string
	apptPatient string
)

var appointmentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Book an appointment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if apptDate == "" || apptDoctor == "" || apptPatient == "" {
			return errors.New("--date, --doctor and --patient are required")
		}
		if err := checkDate(apptDate); err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		a := clinic.Appointment{
			Date:      apptDate,
			StartTime: apptStart,
			EndTime:   apptEnd,
			Status:    apptStatus,
			Notes:     apptNotes,
		}
		if err := fillParticipants(cmd, client, &a); err != nil {
			return err
		}
		res := client.Appointments().Create(cmd.Context(), a)
		if err := resultError("create appointment", res); err != nil {
			return err
		}
		return printDone(clinic.Key(clinic.EntityAppointment, clinic.OpCreate), "Booked appointment on "+apptDate)
	},
}

var appointmentsUpdateCmd = &cobra.Command{
	Use:   "update <appointment-id>",
	Short: "Change an appointment",
	Long: `Change an appointment. The current appointment is fetched and the given
flags are applied to it before the whole record is sent back.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAppointmentID(args[0])
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		cur := client.Appointments().GetByID(cmd.Context(), id)
		if err := resultError("appointment "+args[0], cur); err != nil {
			return err
		}

		a := cur.Value
		a.ID = id
		flags := cmd.Flags()
		if flags.Changed("date") {
			if err := checkDate(apptDate); err != nil {
				return err
			}
			a.Date = apptDate
		}
		setIfChanged(flags.Changed("start"), &a.StartTime, apptStart)
		setIfChanged(flags.Changed("end"), &a.EndTime, apptEnd)
		setIfChanged(flags.Changed("status"), &a.Status, apptStatus)
		setIfChanged(flags.Changed("notes"), &a.Notes, apptNotes)
		if flags.Changed("doctor") || flags.Changed("patient") {
			if !flags.Changed("doctor") {
				apptDoctor = a.Doctor.DoctorID()
			}
			if !flags.Changed("patient") {
				apptPatient = a.Patient.ID
			}
			if err := fillParticipants(cmd, client, &a); err != nil {
				return err
			}
		}

		res := client.Appointments().Update(cmd.Context(), a)
		if err := resultError("update appointment "+args[0], res); err != nil {
			return err
		}
		return printDone(clinic.Key(clinic.EntityAppointment, clinic.OpUpdate), "Updated appointment "+args[0])
	},
}

var appointmentsDeleteCmd = &cobra.Command{
	Use:   "delete <appointment-id>",
	Short: "Delete an appointment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAppointmentID(args[0])
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		res := client.Appointments().Delete(cmd.Context(), id)
		if err := resultError("delete appointment "+args[0], res); err != nil {
			return err
		}
		return printDone(clinic.Key(clinic.EntityAppointment, clinic.OpDelete), "Deleted appointment "+args[0])
	},
}

// fillParticipants loads the doctor and patient named by --doctor and
// --patient into a's snapshots.
func fillParticipants(cmd *cobra.Command, client *clinic.Client, a *clinic.Appointment) error {
	doctor := client.Doctors().GetByID(cmd.Context(), apptDoctor)
	if err := resultError("doctor "+apptDoctor, doctor); err != nil {
		return err
	}
	patient := client.Patients().GetByID(cmd.Context(), apptPatient)
	if err := resultError("patient "+apptPatient, patient); err != nil {
		return err
	}
	a.Doctor = doctor.Value
	a.Patient = patient.Value
	return nil
}

func parseAppointmentID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid appointment id %q", s)
	}
	return id, nil
}

func setIfChanged(changed bool, dst *string, v string) {
	if changed {
		*dst = v
	}
}

func printAppointments(list []clinic.Appointment) {
	if len(list) == 0 {
		fmt.Fprintln(output.Stdout, "No appointments found")
		return
	}
	w := output.Table()
	output.Header(w, "id", "date", "time", "status", "doctor", "patient")
	for _, a := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, output.Dash(a.Date), timeRange(a), output.Dash(output.Title(a.Status)),
			output.Dash(a.Doctor.LastName), output.Dash(a.Patient.LastName))
	}
	_ = w.Flush()
}

func printAppointmentDetails(a clinic.Appointment) {
	w := output.Table()
	fmt.Fprintf(w, "ID:\t%d\n", a.ID)
	fmt.Fprintf(w, "Date:\t%s\n", output.Dash(a.Date))
	fmt.Fprintf(w, "Time:\t%s\n", timeRange(a))
	fmt.Fprintf(w, "Status:\t%s\n", output.Dash(output.Title(a.Status)))
	fmt.Fprintf(w, "Doctor:\tDr. %s %s (%s, %s)\n", a.Doctor.FirstName, a.Doctor.LastName, output.Dash(a.Doctor.DoctorID()), output.Dash(a.Doctor.Specialty))
	fmt.Fprintf(w, "Patient:\t%s %s (%s)\n", a.Patient.FirstName, a.Patient.LastName, output.Dash(a.Patient.ID))
	fmt.Fprintf(w, "Notes:\t%s\n", output.Dash(a.Notes))
	_ = w.Flush()
}

func timeRange(a clinic.Appointment) string {
	if a.StartTime == "" && a.EndTime == "" {
		return "-"
	}
	return output.Dash(a.StartTime) + "-" + output.Dash(a.EndTime)
}

func init() {
	rootCmd.AddCommand(appointmentsCmd)
	appointmentsCmd.AddCommand(appointmentsListCmd, appointmentsGetCmd, appointmentsCreateCmd, appointmentsUpdateCmd, appointmentsDeleteCmd)

	appointmentsListCmd.Flags().StringVar(&listDoctor, "doctor", "", "Only appointments of this doctor id")
	appointmentsListCmd.Flags().StringVar(&listPatient, "patient", "", "Only appointments of this patient id")
	appointmentsListCmd.Flags().StringVar(&listWhere, "where", "", "Filter expression, e.g. 'status == \"scheduled\"'")

	for _, c := range []*cobra.Command{appointmentsCreateCmd, appointmentsUpdateCmd} {
		c.Flags().StringVar(&apptDate, "date", "", "Date (YYYY-MM-DD)")
		c.Flags().StringVar(&apptStart, "start", "", "Start time (HH:MM)")
		c.Flags().StringVar(&apptEnd, "end", "", "End time (HH:MM)")
		c.Flags().StringVar(&apptStatus, "status", "", "Status, e.g. scheduled, completed, cancelled")
		c.Flags().StringVar(&apptNotes, "notes", "", "Notes")
		c.Flags().StringVar(&apptDoctor, "doctor", "", "Doctor id")
		c.Flags().StringVar(&apptPatient, "patient", "", "Patient id")
	}
}
