package cli

import (
	"fmt"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/cli/internal/output"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/clinic"
	"github.com/spf13/cobra"
)

var doctorsCmd = &cobra.Command{
	Use:     "doctors",
	Aliases: []string{"doctor"},
	Short:   "Manage doctors",
}

var doctorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all doctors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		res := client.Doctors().GetAll(cmd.Context())
		if err := resultError("list doctors", res); err != nil {
			return err
		}
		return printResult(res.Value, func() { printDoctors(res.Value) })
	},
}

var doctorsGetCmd = &cobra.Command{
	Use:   "get <doctor-id>",
	Short: "Show one doctor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		res := client.Doctors().GetByID(cmd.Context(), args[0])
		if err := resultError("doctor "+args[0], res); err != nil {
			return err
		}
		return printResult(res.Value, func() { printDoctors([]clinic.Doctor{res.Value}) })
	},
}

var (
	doctorFirstName string
	doctorLastName  string
	doctorSpecialty string
	doctorEmail     string
	doctorPhone     string
	doctorPassword  string
)

var doctorsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a doctor account",
	Long:  "Create a doctor account. Missing names and credentials are prompted for.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := promptNames(&doctorFirstName, &doctorLastName); err != nil {
			return err
		}
		if err := promptCredentials(&doctorEmail, &doctorPassword); err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		d := clinic.Doctor{
			FirstName: doctorFirstName,
			LastName:  doctorLastName,
			Specialty: doctorSpecialty,
			Email:     doctorEmail,
			Phone:     doctorPhone,
		}
		res := client.Doctors().Create(cmd.Context(), d, doctorPassword)
		if err := resultError("create doctor", res); err != nil {
			return err
		}
		return printDone(clinic.Key(clinic.EntityDoctor, clinic.OpCreate), "Created doctor "+doctorEmail)
	},
}

var doctorsUpdateCmd = &cobra.Command{
	Use:   "update <doctor-id>",
	Short: "Update the given fields of a doctor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := clinic.DoctorUpdate{ID: args[0]}
		flags := cmd.Flags()
		u.FirstName = changed(flags, "first-name", doctorFirstName)
		u.LastName = changed(flags, "last-name", doctorLastName)
		u.Specialty = changed(flags, "specialty", doctorSpecialty)
		u.Email = changed(flags, "email", doctorEmail)
		u.Phone = changed(flags, "phone", doctorPhone)

		client, err := newClient()
		if err != nil {
			return err
		}
		res := client.Doctors().Update(cmd.Context(), u)
		if err := resultError("update doctor "+args[0], res); err != nil {
			return err
		}
		return printDone(clinic.Key(clinic.EntityDoctor, clinic.OpUpdate), "Updated doctor "+args[0])
	},
}

var doctorsDeleteCmd = &cobra.Command{
	Use:   "delete <doctor-id>",
	Short: "Delete a doctor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		res := client.Doctors().Delete(cmd.Context(), args[0])
		if err := resultError("delete doctor "+args[0], res); err != nil {
			return err
		}
		return printDone(clinic.Key(clinic.EntityDoctor, clinic.OpDelete), "Deleted doctor "+args[0])
	},
}

var doctorsLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check a doctor's credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := promptCredentials(&doctorEmail, &doctorPassword); err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		res := client.Doctors().Login(cmd.Context(), doctorEmail, doctorPassword)
		if err := resultError("login "+doctorEmail, res); err != nil {
			return err
		}
		return printResult(res.Value, func() {
			fmt.Fprintf(output.Stdout, "Logged in as Dr. %s %s (%s)\n", res.Value.FirstName, res.Value.LastName, res.Value.DoctorID())
		})
	},
}

func printDoctors(doctors []clinic.Doctor) {
	if len(doctors) == 0 {
		fmt.Fprintln(output.Stdout, "No doctors found")
		return
	}
	w := output.Table()
	output.Header(w, "id", "name", "specialty", "email", "phone")
	for _, d := range doctors {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n",
			output.Dash(d.DoctorID()), d.FirstName, d.LastName,
			output.Dash(d.Specialty), output.Dash(d.Email), output.Dash(d.Phone))
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(doctorsCmd)
	doctorsCmd.AddCommand(doctorsListCmd, doctorsGetCmd, doctorsCreateCmd, doctorsUpdateCmd, doctorsDeleteCmd, doctorsLoginCmd)

	for _, c := range []*cobra.Command{doctorsCreateCmd, doctorsUpdateCmd} {
		c.Flags().StringVar(&doctorFirstName, "first-name", "", "First name")
		c.Flags().StringVar(&doctorLastName, "last-name", "", "Last name")
		c.Flags().StringVar(&doctorSpecialty, "specialty", "", "Medical specialty")
		c.Flags().StringVar(&doctorEmail, "email", "", "Email address")
		c.Flags().StringVar(&doctorPhone, "phone", "", "Phone number")
	}
	doctorsCreateCmd.Flags().StringVar(&doctorPassword, "password", "", "Account password")
	doctorsLoginCmd.Flags().StringVar(&doctorEmail, "email", "", "Email address")
	doctorsLoginCmd.Flags().StringVar(&doctorPassword, "password", "", "Account password")
}
