package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// NewServerlessCommand creates the serverless command group
func NewServerlessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serverless",
		Aliases: []string{"functions"},
		Short:   "Manage Serverless resources",
		Long:    "Manage Functions and Assets services, their environments and logs",
	}

	cmd.AddCommand(newServerlessServicesCommand())
	cmd.AddCommand(newServerlessEnvironmentsCommand())
	cmd.AddCommand(newServerlessLogsCommand())

	return cmd
}

func newServerlessServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service"},
		Short:   "Manage Serverless services",
		Long:    "Create, view, update and delete Serverless services",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get SERVICE_SID",
		Short: "Get Serverless service details",
		Long:  "Display detailed information about a specific Serverless service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			service, err := client.Serverless().Services().Get(commandContext(cmd), args[0])
			if err != nil {
				return handleNotFound(cmd, err, "Serverless service", args[0])
			}

			return renderServerlessService(cmd.OutOrStdout(), service)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List Serverless services",
		Long:  "List every Serverless service of the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			services, err := client.Serverless().Services().List(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to list Serverless services: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), services, func(w io.Writer) error {
				rows := make([][]string, 0, len(services))
				for _, s := range services {
					rows = append(rows, []string{s.SID, s.UniqueName, s.FriendlyName, s.DomainBase, formatTime(s.DateCreated)})
				}

				return renderTable(w, []string{"SID", "Unique Name", "Friendly Name", "Domain Base", "Created"}, rows)
			})
		},
	})

	var create twilio.ServerlessServiceCreateParams

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a Serverless service",
		Long:  "Create a Serverless service. --unique-name and --friendly-name are required.",
		RunE: func(cmd *cobra.Command, args []string) error {
			create.IncludeCredentials = boolFlag(cmd, "include-credentials")
			create.UIEditable = boolFlag(cmd, "ui-editable")

			client, err := CreateClient()
			if err != nil {
				return err
			}

			service, err := client.Serverless().Services().Create(commandContext(cmd), &create)
			if err != nil {
				return fmt.Errorf("failed to create Serverless service: %w", err)
			}

			printf(cmd, "Created Serverless service %s\n", service.SID)

			return renderServerlessService(cmd.OutOrStdout(), service)
		},
	}
	createCmd.Flags().StringVar(&create.UniqueName, "unique-name", "", "unique name, also the domain prefix (required)")
	createCmd.Flags().StringVar(&create.FriendlyName, "friendly-name", "", "friendly name (required)")
	createCmd.Flags().Bool("include-credentials", false, "expose account credentials to functions")
	createCmd.Flags().Bool("ui-editable", false, "allow editing in the Console")
	cmd.AddCommand(createCmd)

	var update twilio.ServerlessServiceUpdateParams

	updateCmd := &cobra.Command{
		Use:   "update SERVICE_SID",
		Short: "Update a Serverless service",
		Long:  "Change the friendly name or settings of a Serverless service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update.IncludeCredentials = boolFlag(cmd, "include-credentials")
			update.UIEditable = boolFlag(cmd, "ui-editable")

			if update == (twilio.ServerlessServiceUpdateParams{}) {
				return constants.ErrNothingToUpdate
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			service, err := client.Serverless().Services().Update(commandContext(cmd), args[0], &update)
			if err != nil {
				return handleNotFound(cmd, err, "Serverless service", args[0])
			}

			printf(cmd, "Updated Serverless service %s\n", service.SID)

			return renderServerlessService(cmd.OutOrStdout(), service)
		},
	}
	updateCmd.Flags().StringVar(&update.FriendlyName, "friendly-name", "", "new friendly name")
	updateCmd.Flags().Bool("include-credentials", false, "expose account credentials to functions")
	updateCmd.Flags().Bool("ui-editable", false, "allow editing in the Console")
	cmd.AddCommand(updateCmd)

	cmd.AddCommand(newDeleteCommand("Serverless service", "SERVICE_SID", func(_ *cobra.Command, client twilio.Client) (deleteFunc, error) {
		return client.Serverless().Services().Delete, nil
	}))

	return cmd
}

func newServerlessEnvironmentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "environments",
		Aliases: []string{"environment", "env"},
		Short:   "Manage Serverless environments",
		Long:    "Create, view and delete the environments of a Serverless service",
	}

	cmd.PersistentFlags().String("service", "", "Serverless service SID (required)")

	cmd.AddCommand(&cobra.Command{
		Use:   "get ENVIRONMENT_SID",
		Short: "Get Serverless environment details",
		Long:  "Display detailed information about a specific environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, client, err := serviceClient(cmd)
			if err != nil {
				return err
			}

			environment, err := client.Serverless().Environments().Get(commandContext(cmd), service, args[0])
			if err != nil {
				return handleNotFound(cmd, err, "Serverless environment", args[0])
			}

			return renderEnvironment(cmd.OutOrStdout(), environment)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List Serverless environments",
		Long:  "List the environments of a Serverless service",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, client, err := serviceClient(cmd)
			if err != nil {
				return err
			}

			environments, err := client.Serverless().Environments().List(commandContext(cmd), service)
			if err != nil {
				return fmt.Errorf("failed to list Serverless environments: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), environments, func(w io.Writer) error {
				rows := make([][]string, 0, len(environments))
				for _, e := range environments {
					rows = append(rows, []string{e.SID, e.UniqueName, e.DomainName, formatOptional(e.BuildSID), formatTime(e.DateCreated)})
				}

				return renderTable(w, []string{"SID", "Unique Name", "Domain", "Build SID", "Created"}, rows)
			})
		},
	})

	var create twilio.ServerlessEnvironmentCreateParams

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a Serverless environment",
		Long:  "Create an environment of a Serverless service. --unique-name is required.",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, client, err := serviceClient(cmd)
			if err != nil {
				return err
			}

			environment, err := client.Serverless().Environments().Create(commandContext(cmd), service, &create)
			if err != nil {
				return fmt.Errorf("failed to create Serverless environment: %w", err)
			}

			printf(cmd, "Created Serverless environment %s\n", environment.SID)

			return renderEnvironment(cmd.OutOrStdout(), environment)
		},
	}
	createCmd.Flags().StringVar(&create.UniqueName, "unique-name", "", "unique name of the environment (required)")
	createCmd.Flags().StringVar(&create.DomainSuffix, "domain-suffix", "", "suffix appended to the service domain")
	cmd.AddCommand(createCmd)

	cmd.AddCommand(newDeleteCommand("Serverless environment", "ENVIRONMENT_SID", func(cmd *cobra.Command, client twilio.Client) (deleteFunc, error) {
		service, err := requiredFlag(cmd, "service", constants.ErrServiceRequired)
		if err != nil {
			return nil, err
		}

		return func(ctx context.Context, sid string) error {
			return client.Serverless().Environments().Delete(ctx, service, sid)
		}, nil
	}))

	return cmd
}

func newServerlessLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "logs",
		Aliases: []string{"log"},
		Short:   "Read Serverless logs",
		Long:    "Read the function logs of a Serverless environment",
	}

	cmd.PersistentFlags().String("service", "", "Serverless service SID (required)")
	cmd.PersistentFlags().String("environment", "", "Serverless environment SID (required)")

	cmd.AddCommand(newServerlessLogsListCommand())

	cmd.AddCommand(&cobra.Command{
		Use:   "get LOG_SID",
		Short: "Get a Serverless log",
		Long:  "Display a single log line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, environment, client, err := parentClient(cmd, "environment", constants.ErrEnvironmentRequired)
			if err != nil {
				return err
			}

			log, err := client.Serverless().Logs().Get(commandContext(cmd), service, environment, args[0])
			if err != nil {
				return handleNotFound(cmd, err, "Serverless log", args[0])
			}

			return renderOutput(cmd.OutOrStdout(), log, func(w io.Writer) error {
				return renderProperties(w, [][]string{
					{"SID", log.SID},
					{"Level", string(log.Level)},
					{"Message", log.Message},
					{"Function SID", log.FunctionSID},
					{"Request SID", log.RequestSID},
					{"Build SID", log.BuildSID},
					{"Deployment SID", log.DeploymentSID},
					{"Created", formatTime(log.DateCreated)},
				})
			})
		},
	})

	return cmd
}

func newServerlessLogsListCommand() *cobra.Command {
	var (
		functionSID string
		start       string
		end         string
		levels      []string
		save        bool
		saveDir     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Serverless logs",
		Long: `List the logs of a Serverless environment, oldest first as returned by Twilio.
--start and --end accept RFC 3339 timestamps or YYYY-MM-DD dates. --level keeps
only the given levels. --save writes the logs to <environment_sid>.json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := &twilio.ServerlessLogListParams{FunctionSID: functionSID}

			var err error

			params.StartDate, err = parseTimestamp("start", start)
			if err != nil {
				return err
			}

			params.EndDate, err = parseTimestamp("end", end)
			if err != nil {
				return err
			}

			err = params.Validate()
			if err != nil {
				return err
			}

			wanted := make([]twilio.LogLevel, 0, len(levels))
			for _, level := range levels {
				parsed, err := twilio.ParseLogLevel(level)
				if err != nil {
					return err
				}

				wanted = append(wanted, parsed)
			}

			service, environment, client, err := parentClient(cmd, "environment", constants.ErrEnvironmentRequired)
			if err != nil {
				return err
			}

			logs, err := client.Serverless().Logs().List(commandContext(cmd), service, environment, params)
			if err != nil {
				return handleNotFound(cmd, err, "Serverless environment", environment)
			}

			logs = twilio.FilterLogsByLevel(logs, wanted...)

			if save {
				path, err := saveLogs(saveDir, environment, logs)
				if err != nil {
					return err
				}

				printf(cmd, "Saved %d logs to %s\n", len(logs), path)

				return nil
			}

			return renderOutput(cmd.OutOrStdout(), logs, func(w io.Writer) error {
				rows := make([][]string, 0, len(logs))
				for _, log := range logs {
					rows = append(rows, []string{formatTime(log.DateCreated), string(log.Level), truncate(log.Message), log.FunctionSID})
				}

				return renderTable(w, []string{"Created", "Level", "Message", "Function SID"}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&functionSID, "function", "", "only logs of this function SID")
	cmd.Flags().StringVar(&start, "start", "", "only logs created at or after this time")
	cmd.Flags().StringVar(&end, "end", "", "only logs created before this time")
	cmd.Flags().StringSliceVar(&levels, "level", nil, "only logs at these levels (INFO, WARN, ERROR)")
	cmd.Flags().BoolVar(&save, "save", false, "write the logs as JSON instead of printing them")
	cmd.Flags().StringVar(&saveDir, "save-dir", ".", "directory --save writes to")

	return cmd
}

func saveLogs(dir, environment string, logs []twilio.ServerlessLog) (string, error) {
	data, err := json.MarshalIndent(logs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding logs to JSON: %w", err)
	}

	path := filepath.Join(dir, environment+".json")

	err = os.WriteFile(path, data, constants.ExportFilePerm)
	if err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

func renderServerlessService(w io.Writer, service *twilio.ServerlessService) error {
	return renderOutput(w, service, func(w io.Writer) error {
		return renderProperties(w, [][]string{
			{"SID", service.SID},
			{"Unique Name", service.UniqueName},
			{"Friendly Name", service.FriendlyName},
			{"Domain Base", service.DomainBase},
			{"Include Credentials", formatBool(service.IncludeCredentials)},
			{"UI Editable", formatBool(service.UIEditable)},
			{"Created", formatTime(service.DateCreated)},
			{"Updated", formatTime(service.DateUpdated)},
		})
	})
}

func renderEnvironment(w io.Writer, environment *twilio.ServerlessEnvironment) error {
	return renderOutput(w, environment, func(w io.Writer) error {
		return renderProperties(w, [][]string{
			{"SID", environment.SID},
			{"Unique Name", environment.UniqueName},
			{"Service SID", environment.ServiceSID},
			{"Domain", environment.DomainName},
			{"Domain Suffix", formatOptional(environment.DomainSuffix)},
			{"Build SID", formatOptional(environment.BuildSID)},
			{"Created", formatTime(environment.DateCreated)},
			{"Updated", formatTime(environment.DateUpdated)},
		})
	})
}
