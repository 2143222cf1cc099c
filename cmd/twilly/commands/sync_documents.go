package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

func newSyncDocumentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"document", "docs"},
		Short:   "Manage Sync documents",
		Long:    "Create, view, update and delete the documents of a Sync service",
	}

	cmd.PersistentFlags().String("service", "", "Sync service SID (required)")

	cmd.AddCommand(&cobra.Command{
		Use:   "get DOCUMENT_SID",
		Short: "Get Sync document details",
		Long:  "Display a Sync document and its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := requiredFlag(cmd, "service", constants.ErrServiceRequired)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			document, err := client.Sync().Documents().Get(commandContext(cmd), service, args[0])
			if err != nil {
				return handleNotFound(cmd, err, "Sync document", args[0])
			}

			return renderSyncDocument(cmd.OutOrStdout(), document)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List Sync documents",
		Long:  "List every document of a Sync service",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := requiredFlag(cmd, "service", constants.ErrServiceRequired)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			documents, err := client.Sync().Documents().List(commandContext(cmd), service)
			if err != nil {
				return fmt.Errorf("failed to list Sync documents: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), documents, func(w io.Writer) error {
				rows := make([][]string, 0, len(documents))
				for _, d := range documents {
					rows = append(rows, []string{d.SID, formatOptional(d.UniqueName), d.Revision, formatTimePtr(d.DateExpires), formatTime(d.DateUpdated)})
				}

				return renderTable(w, []string{"SID", "Unique Name", "Revision", "Expires", "Updated"}, rows)
			})
		},
	})

	cmd.AddCommand(newSyncDocumentsCreateCommand())
	cmd.AddCommand(newSyncDocumentsUpdateCommand())
	cmd.AddCommand(newDeleteCommand("Sync document", "DOCUMENT_SID", func(cmd *cobra.Command, client twilio.Client) (deleteFunc, error) {
		service, err := requiredFlag(cmd, "service", constants.ErrServiceRequired)
		if err != nil {
			return nil, err
		}

		return func(ctx context.Context, sid string) error {
			return client.Sync().Documents().Delete(ctx, service, sid)
		}, nil
	}))

	return cmd
}

func newSyncDocumentsCreateCommand() *cobra.Command {
	var (
		uniqueName string
		data       string
		ttl        int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a Sync document",
		Long:  "Create a Sync document. Data is a JSON object and the time to live is in seconds.",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := requiredFlag(cmd, "service", constants.ErrServiceRequired)
			if err != nil {
				return err
			}

			field, err := jsonFlag(data)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			document, err := client.Sync().Documents().Create(commandContext(cmd), service, &twilio.SyncDocumentCreateParams{
				UniqueName: uniqueName,
				Data:       field,
				TTL:        ttl,
			})
			if err != nil {
				return fmt.Errorf("failed to create Sync document: %w", err)
			}

			printf(cmd, "Created Sync document %s\n", document.SID)

			return renderSyncDocument(cmd.OutOrStdout(), document)
		},
	}

	cmd.Flags().StringVar(&uniqueName, "unique-name", "", "unique name of the document")
	cmd.Flags().StringVar(&data, "data", "", "document data as a JSON object")
	cmd.Flags().IntVar(&ttl, "ttl", 0, "time to live in seconds, 0 for never")

	return cmd
}

func newSyncDocumentsUpdateCommand() *cobra.Command {
	var (
		data    string
		ttl     int
		ifMatch string
	)

	cmd := &cobra.Command{
		Use:   "update DOCUMENT_SID",
		Short: "Update a Sync document",
		Long:  "Replace the data or time to live of a Sync document. --if-match only applies the update to that revision.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := requiredFlag(cmd, "service", constants.ErrServiceRequired)
			if err != nil {
				return err
			}

			field, err := jsonFlag(data)
			if err != nil {
				return err
			}

			if field.IsZero() && ttl == 0 {
				return constants.ErrNothingToUpdate
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			document, err := client.Sync().Documents().Update(commandContext(cmd), service, args[0], &twilio.SyncDocumentUpdateParams{
				Data:    field,
				TTL:     ttl,
				IfMatch: ifMatch,
			})
			if err != nil {
				return handleNotFound(cmd, err, "Sync document", args[0])
			}

			printf(cmd, "Updated Sync document %s\n", document.SID)

			return renderSyncDocument(cmd.OutOrStdout(), document)
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "new document data as a JSON object")
	cmd.Flags().IntVar(&ttl, "ttl", 0, "new time to live in seconds")
	cmd.Flags().StringVar(&ifMatch, "if-match", "", "only update if the document is at this revision")

	return cmd
}

func renderSyncDocument(w io.Writer, document *twilio.SyncDocument) error {
	return renderOutput(w, document, func(w io.Writer) error {
		return renderProperties(w, [][]string{
			{"SID", document.SID},
			{"Unique Name", formatOptional(document.UniqueName)},
			{"Service SID", document.ServiceSID},
			{"Revision", document.Revision},
			{"Data", rawJSON(document.Data)},
			{"Created By", document.CreatedBy},
			{"Expires", formatTimePtr(document.DateExpires)},
			{"Created", formatTime(document.DateCreated)},
			{"Updated", formatTime(document.DateUpdated)},
		})
	})
}
