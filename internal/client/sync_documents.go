package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// SyncDocumentsClient implements twilio.SyncDocumentsClient.
type SyncDocumentsClient struct {
	syncBase

	documents collection[twilio.SyncDocument]
}

func (c *SyncDocumentsClient) documentsURL(serviceSID string, segments ...string) string {
	return c.serviceURL(append([]string{serviceSID, "Documents"}, segments...)...)
}

// Create implements twilio.SyncDocumentsClient.Create.
func (c *SyncDocumentsClient) Create(
	ctx context.Context, serviceSID string, params *twilio.SyncDocumentCreateParams,
) (*twilio.SyncDocument, error) {
	err := requireSIDs("service SID", serviceSID)
	if err != nil {
		return nil, err
	}

	var document twilio.SyncDocument

	err = c.send(ctx, http.MethodPost, c.documentsURL(serviceSID), params, "", &document)
	if err != nil {
		return nil, fmt.Errorf("creating sync document: %w", err)
	}

	return &document, nil
}

// List implements twilio.SyncDocumentsClient.List.
func (c *SyncDocumentsClient) List(ctx context.Context, serviceSID string) ([]twilio.SyncDocument, error) {
	err := requireSIDs("service SID", serviceSID)
	if err != nil {
		return nil, err
	}

	documents, err := c.documents.list(ctx, c.documentsURL(serviceSID), pageSizeParams(constants.StandardPageSize))
	if err != nil {
		return nil, fmt.Errorf("listing sync documents: %w", err)
	}

	return documents, nil
}

// Iterate implements twilio.SyncDocumentsClient.Iterate.
func (c *SyncDocumentsClient) Iterate(ctx context.Context, serviceSID string) *twilio.PageIterator[twilio.SyncDocument] {
	err := requireSIDs("service SID", serviceSID)
	if err != nil {
		return failedIterator[twilio.SyncDocument](ctx, err)
	}

	return c.documents.iterate(ctx, c.documentsURL(serviceSID), pageSizeParams(constants.StandardPageSize))
}

// Get implements twilio.SyncDocumentsClient.Get.
func (c *SyncDocumentsClient) Get(ctx context.Context, serviceSID, sid string) (*twilio.SyncDocument, error) {
	err := requireSIDs("service SID", serviceSID, "document SID", sid)
	if err != nil {
		return nil, err
	}

	var document twilio.SyncDocument

	err = c.send(ctx, http.MethodGet, c.documentsURL(serviceSID, sid), nil, "", &document)
	if err != nil {
		return nil, fmt.Errorf("getting sync document: %w", err)
	}

	return &document, nil
}

// Update implements twilio.SyncDocumentsClient.Update.
func (c *SyncDocumentsClient) Update(
	ctx context.Context, serviceSID, sid string, params *twilio.SyncDocumentUpdateParams,
) (*twilio.SyncDocument, error) {
	err := requireSIDs("service SID", serviceSID, "document SID", sid)
	if err != nil {
		return nil, err
	}

	ifMatch := ""
	if params != nil {
		ifMatch = params.IfMatch
	}

	var document twilio.SyncDocument

	err = c.send(ctx, http.MethodPost, c.documentsURL(serviceSID, sid), params, ifMatch, &document)
	if err != nil {
		return nil, fmt.Errorf("updating sync document: %w", err)
	}

	return &document, nil
}

// Delete implements twilio.SyncDocumentsClient.Delete.
func (c *SyncDocumentsClient) Delete(ctx context.Context, serviceSID, sid string) error {
	err := requireSIDs("service SID", serviceSID, "document SID", sid)
	if err != nil {
		return err
	}

	err = c.delete(ctx, c.documentsURL(serviceSID, sid))
	if err != nil {
		return fmt.Errorf("deleting sync document: %w", err)
	}

	return nil
}
