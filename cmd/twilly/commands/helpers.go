package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

const (
	defaultJSONIndent = 2
	dateLayout        = "2006-01-02"
	tableTimeLayout   = "2006-01-02 15:04:05"
)

// OutputFormat returns the selected output format.
func OutputFormat() (string, error) {
	format := strings.ToLower(viper.GetString("output"))

	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, format)
	}
}

// renderOutput writes data as JSON or YAML, or hands the writer to table for
// the table format.
func renderOutput(w io.Writer, data interface{}, table func(w io.Writer) error) error {
	format, err := OutputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		err = encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding data to JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(defaultJSONIndent)

		err = encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding data to YAML: %w", err)
		}

		return encoder.Close()
	default:
		return table(w)
	}
}

// renderProperties renders label/value rows as a two column table.
func renderProperties(w io.Writer, rows [][]string) error {
	return renderTable(w, []string{"Property", "Value"}, rows)
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)

	header := make([]interface{}, 0, len(headers))
	for _, h := range headers {
		header = append(header, h)
	}

	table.Header(header...)

	for _, row := range rows {
		err := table.Append(row)
		if err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// ConfirmAction asks a yes/no question on the command's input. It returns
// true straight away when force is set.
func ConfirmAction(cmd *cobra.Command, message string, force bool) bool {
	if force {
		return true
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (y/N): ", message)

	response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))

	if response != "y" && response != "yes" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")

		return false
	}

	return true
}

// handleNotFound prints a not found message and swallows the error when err
// is a 404 from Twilio. Any other error is returned unchanged.
func handleNotFound(cmd *cobra.Command, err error, resource, sid string) error {
	if !twilio.IsNotFound(err) {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s not found.\n", resource, sid)

	return nil
}

func printf(cmd *cobra.Command, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return t.Local().Format(tableTimeLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return constants.None
	}

	return formatTime(*t)
}

func formatOptional(s *string) string {
	if s == nil || *s == "" {
		return constants.None
	}

	return *s
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

func truncate(s string) string {
	if len(s) <= constants.StringTruncationLimit {
		return s
	}

	return s[:constants.StringTruncationLimit-3] + "..."
}

// parseDate accepts YYYY-MM-DD. An empty value yields nil.
func parseDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w for --%s, expected YYYY-MM-DD: %q", constants.ErrInvalidDate, flag, value)
	}

	return &parsed, nil
}

// parseTimestamp accepts RFC 3339 timestamps or YYYY-MM-DD dates.
func parseTimestamp(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return &parsed, nil
	}

	return parseDate(flag, value)
}

func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	value, _ := cmd.Flags().GetBool(name)

	return &value
}

func requiredFlag(cmd *cobra.Command, name string, missing error) (string, error) {
	value, _ := cmd.Flags().GetString(name)
	if value == "" {
		return "", missing
	}

	return value, nil
}

func jsonFlag(value string) (twilio.JSONField, error) {
	if value == "" {
		return twilio.JSONField{}, nil
	}

	return twilio.NewJSONField(value)
}

func rawJSON(data json.RawMessage) string {
	if len(data) == 0 {
		return constants.None
	}

	return truncate(string(data))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

type deleteFunc func(ctx context.Context, sid string) error

// newDeleteCommand creates a "delete SID" command that asks for confirmation
// unless --force is given. resolve binds the delete to the parsed flags.
func newDeleteCommand(resource, argName string, resolve func(cmd *cobra.Command, client twilio.Client) (deleteFunc, error)) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete " + argName,
		Short: "Delete a " + resource,
		Long:  "Delete a " + resource + ". This cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			del, err := resolve(cmd, client)
			if err != nil {
				return err
			}

			if !ConfirmAction(cmd, fmt.Sprintf("Really delete %s '%s'?", resource, args[0]), force) {
				return nil
			}

			err = del(commandContext(cmd), args[0])
			if err != nil {
				return handleNotFound(cmd, err, upperFirst(resource), args[0])
			}

			printf(cmd, "Successfully deleted %s '%s'\n", resource, args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force deletion without confirmation")

	return cmd
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
