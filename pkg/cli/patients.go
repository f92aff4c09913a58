package cli

import (
	"fmt"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/cli/internal/output"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/clinic"
	"github.com/spf13/cobra"
)

var patientsCmd = &cobra.Command{
	Use:     "patients",
	Aliases: []string{"patient"},
	Short:   "Manage patients",
}

var patientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all patients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		res := client.Patients().GetAll(cmd.Context())
		if err := resultError("list patients", res); err != nil {
			return err
		}
		return printResult(res.Value, func() { printPatients(res.Value) })
	},
}

var patientsGetCmd = &cobra.Command{
	Use:   "get <patient-id>",
	Short: "Show one patient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		res := client.Patients().GetByID(cmd.Context(), args[0])
		if err := resultError("patient "+args[0], res); err != nil {
			return err
		}
		return printResult(res.Value, func() { printPatients([]clinic.Patient{res.Value}) })
	},
}

var (
	patientFirstName   string
	patientLastName    string
	patientEmail       string
	patientPhone       string
	patientDateOfBirth string
	patientPassword    string
)

var patientsRegisterCmd = &cobra.Command{
	Use:     "register",
	Aliases: []string{"create"},
	Short:   "Register a patient account",
	Long:    "Register a patient account. Missing names and credentials are prompted for.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkDate(patientDateOfBirth); err != nil {
			return err
		}
		if err := promptNames(&patientFirstName, &patientLastName); err != nil {
			return err
		}
		if err := promptCredentials(&patientEmail, &patientPassword); err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		p := clinic.Patient{
			FirstName:   patientFirstName,
			LastName:    patientLastName,
			Email:       patientEmail,
			Phone:       patientPhone,
			DateOfBirth: patientDateOfBirth,
		}
		res := client.Patients().Register(cmd.Context(), p, patientPassword)
		if err := resultError("register patient", res); err != nil {
			return err
		}
		return printDone(clinic.Key(clinic.EntityPatient, clinic.OpCreate), "Registered patient "+patientEmail)
	},
}

var patientsUpdateCmd = &cobra.Command{
	Use:   "update <patient-id>",
	Short: "Update the given fields of a patient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("date-of-birth") {
			if err := checkDate(patientDateOfBirth); err != nil {
				return err
			}
		}
		u := clinic.PatientUpdate{
			ID:          args[0],
			FirstName:   changed(flags, "first-name", patientFirstName),
			LastName:    changed(flags, "last-name", patientLastName),
			Email:       changed(flags, "email", patientEmail),
			Phone:       changed(flags, "phone", patientPhone),
			DateOfBirth: changed(flags, "date-of-birth", patientDateOfBirth),
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		res := client.Patients().Update(cmd.Context(), u)
		if err := resultError("update patient "+args[0], res); err != nil {
			return err
		}
		return printDone(clinic.Key(clinic.EntityPatient, clinic.OpUpdate), "Updated patient "+args[0])
	},
}

var patientsDeleteCmd = &cobra.Command{
	Use:   "delete <patient-id>",
	Short: "Delete a patient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		res := client.Patients().Delete(cmd.Context(), args[0])
		if err := resultError("delete patient "+args[0], res); err != nil {
			return err
		}
		return printDone(clinic.Key(clinic.EntityPatient, clinic.OpDelete), "Deleted patient "+args[0])
	},
}

var patientsLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check a patient's credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := promptCredentials(&patientEmail, &patientPassword); err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		res := client.Patients().Login(cmd.Context(), patientEmail, patientPassword)
		if err := resultError("login "+patientEmail, res); err != nil {
			return err
		}
		return printResult(res.Value, func() {
			fmt.Fprintf(output.Stdout, "Logged in as %s %s (%s)\n", res.Value.FirstName, res.Value.LastName, res.Value.ID)
		})
	},
}

func printPatients(patients []clinic.Patient) {
	if len(patients) == 0 {
		fmt.Fprintln(output.Stdout, "No patients found")
		return
	}
	w := output.Table()
	output.Header(w, "id", "name", "email", "phone", "born")
	for _, p := range patients {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n",
			output.Dash(p.ID), p.FirstName, p.LastName,
			output.Dash(p.Email), output.Dash(p.Phone), output.Dash(p.DateOfBirth))
	}
	_ = w.Flush()
}

// checkDate accepts an empty value or a YYYY-MM-DD date.
func checkDate(s string) error {
	if s == "" {
		return nil
	}
	if d, ok := clinic.NormalizeDate(s); !ok || d != s {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(patientsCmd)
	patientsCmd.AddCommand(patientsListCmd, patientsGetCmd, patientsRegisterCmd, patientsUpdateCmd, patientsDeleteCmd, patientsLoginCmd)

	for _, c := range []*cobra.Command{patientsRegisterCmd, patientsUpdateCmd} {
		c.Flags().StringVar(&patientFirstName, "first-name", "", "First name")
		c.Flags().StringVar(&patientLastName, "last-name", "", "Last name")
		c.Flags().StringVar(&patientEmail, "email", "", "Email address")
		c.Flags().StringVar(&patientPhone, "phone", "", "Phone number")
		c.Flags().StringVar(&patientDateOfBirth, "date-of-birth", "", "Date of birth (YYYY-MM-DD)")
	}
	patientsRegisterCmd.Flags().StringVar(&patientPassword, "password", "", "Account password")
	patientsLoginCmd.Flags().StringVar(&patientEmail, "email", "", "Email address")
	patientsLoginCmd.Flags().StringVar(&patientPassword, "password", "", "Account password")
}
