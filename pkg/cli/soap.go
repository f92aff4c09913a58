package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/cli/internal/output"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/cli/internal/parse"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
	"github.com/spf13/cobra"
)

var soapCmd = &cobra.Command{
	Use:   "soap",
	Short: "Build and send raw SOAP operations",
}

var soapFields []string

var soapEnvelopeCmd = &cobra.Command{
	Use:   "envelope <operation>",
	Short: "Print the request envelope for an operation",
	Long: `Print the request envelope for an operation without sending it.

Each --field adds an element to the operation; dots nest elements:

  clinicctl soap envelope createAppointment \
    --field appointmentDetails.appointmentDate=2025-03-10 \
    --field appointmentDetails.doctor.doctorId=d-100`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationNoConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parse.Fields(soapFields)
		if err != nil {
			return err
		}
		fragment := soap.NewFragment(args[0])
		fillFragment(fragment, fields)
		fmt.Fprintln(output.Stdout, soap.Parse(soap.Build(fragment.String())).Pretty())
		return nil
	},
}

var soapCallCmd = &cobra.Command{
	Use:   "call <group> <operation>",
	Short: "Send an operation to an endpoint group and print the response",
	Long: `Send an operation to an endpoint group (users or appointments) and print
the response envelope, indented. The catalog is not consulted, so any
operation the backend exposes can be called.

  clinicctl soap call users getDoctor --field doctorId=d-100`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, action := soap.EndpointGroup(strings.Trim(args[0], "/")), args[1]
		fields, err := parse.Fields(soapFields)
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		reply, err := client.Raw(cmd.Context(), group, action, func(f *soap.Fragment) {
			fillFragment(f, fields)
		})
		if err != nil {
			return &ExitError{Code: ExitTransport, Err: fmt.Errorf("%s: backend unreachable: %w", action, err)}
		}

		out := soapCallOutput{
			StatusCode: reply.StatusCode,
			Succeeded:  reply.Succeeded && reply.Fault == nil,
			Fault:      reply.Fault,
			Body:       reply.Document.Raw(),
		}
		if err := printResult(out, func() {
			fmt.Fprintln(output.Stdout, reply.Document.Pretty())
		}); err != nil {
			return err
		}
		if !out.Succeeded {
			msg := fmt.Sprintf("%s failed: HTTP %d", action, reply.StatusCode)
			if reply.Fault != nil {
				msg += ": " + reply.Fault.String()
			}
			return &ExitError{Code: ExitService, Err: errors.New(msg)}
		}
		return nil
	},
}

// soapCallOutput is the JSON form of a raw call.
type soapCallOutput struct {
	StatusCode int         `json:"statusCode"`
	Succeeded  bool        `json:"succeeded"`
	Fault      *soap.Fault `json:"fault,omitempty"`
	Body       string      `json:"body"`
}

// fillFragment adds fields to root. Fields sharing a path prefix share the
// nested element.
func fillFragment(root *soap.Fragment, fields []parse.Field) {
	nested := map[string]*soap.Fragment{}
	for _, field := range fields {
		parent := root
		for i, name := range field.Path[:len(field.Path)-1] {
			key := strings.Join(field.Path[:i+1], ".")
			child, ok := nested[key]
			if !ok {
				child = parent.Child(name)
				nested[key] = child
			}
			parent = child
		}
		parent.Add(field.Path[len(field.Path)-1], field.Value)
	}
}

func init() {
	rootCmd.AddCommand(soapCmd)
	soapCmd.AddCommand(soapEnvelopeCmd, soapCallCmd)
	for _, c := range []*cobra.Command{soapEnvelopeCmd, soapCallCmd} {
		c.Flags().StringArrayVar(&soapFields, "field", nil, "Element to send as name=value; dots nest (repeatable)")
	}
}
