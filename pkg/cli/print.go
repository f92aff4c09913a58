package cli

import (
	"fmt"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/cli/internal/output"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/clinic"
	"github.com/spf13/pflag"
)

// printResult outputs a single operation result.
//
// Contract: when --json or --query is active, ONLY the JSON encoding of data
// (or of the query matches) is written to stdout. textFn is called only in
// text mode.
func printResult(data any, textFn func()) error {
	if query != "" {
		matches, err := output.Query(data, query)
		if err != nil {
			return err
		}
		return output.JSON(matches)
	}
	if jsonOutput {
		return output.JSON(data)
	}
	textFn()
	return nil
}

// writeOutput is the JSON form of a completed write operation.
type writeOutput struct {
	Operation string `json:"operation"`
	Outcome   string `json:"outcome"`
}

// printDone reports a successful write.
func printDone(key clinic.OperationKey, message string) error {
	return printResult(writeOutput{Operation: key.String(), Outcome: clinic.OutcomeOK.String()}, func() {
		fmt.Fprintln(output.Stdout, message)
	})
}

// changed returns &value when the flag was set on the command line.
func changed(flags *pflag.FlagSet, name, value string) *string {
	if !flags.Changed(name) {
		return nil
	}
	return &value
}
