package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/TristanBlackwell/twilly/internal/constants"
	internalhttp "github.com/TristanBlackwell/twilly/internal/http"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// SyncClient implements twilio.SyncClient.
type SyncClient struct {
	services  *SyncServicesClient
	documents *SyncDocumentsClient
	maps      *SyncMapsClient
	mapItems  *SyncMapItemsClient
	lists     *SyncListsClient
	listItems *SyncListItemsClient
}

// NewSyncClient creates the Sync resource clients.
func NewSyncClient(httpClient *internalhttp.Client, baseURL string, maxPages int) *SyncClient {
	base := syncBase{httpClient: httpClient, baseURL: baseURL}

	return &SyncClient{
		services: &SyncServicesClient{
			syncBase: base,
			services: newCollection[twilio.SyncService](httpClient, baseURL, "services", maxPages),
		},
		documents: &SyncDocumentsClient{
			syncBase:  base,
			documents: newCollection[twilio.SyncDocument](httpClient, baseURL, "documents", maxPages),
		},
		maps: &SyncMapsClient{
			syncBase: base,
			maps:     newCollection[twilio.SyncMap](httpClient, baseURL, "maps", maxPages),
		},
		mapItems: &SyncMapItemsClient{
			syncBase: base,
			items:    newCollection[twilio.SyncMapItem](httpClient, baseURL, "items", maxPages),
		},
		lists: &SyncListsClient{
			syncBase: base,
			lists:    newCollection[twilio.SyncList](httpClient, baseURL, "lists", maxPages),
		},
		listItems: &SyncListItemsClient{
			syncBase: base,
			items:    newCollection[twilio.SyncListItem](httpClient, baseURL, "items", maxPages),
		},
	}
}

// Services implements twilio.SyncClient.Services.
func (c *SyncClient) Services() twilio.SyncServicesClient { return c.services }

// Documents implements twilio.SyncClient.Documents.
func (c *SyncClient) Documents() twilio.SyncDocumentsClient { return c.documents }

// Maps implements twilio.SyncClient.Maps.
func (c *SyncClient) Maps() twilio.SyncMapsClient { return c.maps }

// MapItems implements twilio.SyncClient.MapItems.
func (c *SyncClient) MapItems() twilio.SyncMapItemsClient { return c.mapItems }

// Lists implements twilio.SyncClient.Lists.
func (c *SyncClient) Lists() twilio.SyncListsClient { return c.lists }

// ListItems implements twilio.SyncClient.ListItems.
func (c *SyncClient) ListItems() twilio.SyncListItemsClient { return c.listItems }

type syncBase struct {
	httpClient *internalhttp.Client
	baseURL    string
}

func (b syncBase) serviceURL(segments ...string) string {
	return internalhttp.JoinURL(b.baseURL, append([]string{"v1", "Services"}, segments...)...)
}

func (b syncBase) send(ctx context.Context, method, target string, params interface{}, ifMatch string, out interface{}) error {
	req := &internalhttp.Request{
		Method: method,
		URL:    target,
		Params: params,
	}

	if ifMatch != "" {
		req.Headers = map[string]string{"If-Match": ifMatch}
	}

	return b.httpClient.SendInto(ctx, req, out)
}

func (b syncBase) delete(ctx context.Context, target string) error {
	return b.httpClient.Exec(ctx, &internalhttp.Request{
		Method: http.MethodDelete,
		URL:    target,
	})
}

func requireSIDs(names ...string) error {
	for i := 0; i+1 < len(names); i += 2 {
		if names[i+1] == "" {
			return twilio.NewValidationError("%s is required", names[i])
		}
	}

	return nil
}

func pageSizeParams(size int) map[string]string {
	return map[string]string{"PageSize": strconv.Itoa(size)}
}

// SyncServicesClient implements twilio.SyncServicesClient.
type SyncServicesClient struct {
	syncBase

	services collection[twilio.SyncService]
}

// Create implements twilio.SyncServicesClient.Create.
func (c *SyncServicesClient) Create(ctx context.Context, params *twilio.SyncServiceParams) (*twilio.SyncService, error) {
	err := params.Validate()
	if err != nil {
		return nil, err
	}

	var service twilio.SyncService

	err = c.send(ctx, http.MethodPost, c.serviceURL(), params, "", &service)
	if err != nil {
		return nil, fmt.Errorf("creating sync service: %w", err)
	}

	return &service, nil
}

// List implements twilio.SyncServicesClient.List.
func (c *SyncServicesClient) List(ctx context.Context) ([]twilio.SyncService, error) {
	services, err := c.services.list(ctx, c.serviceURL(), pageSizeParams(constants.ServicesPageSize))
	if err != nil {
		return nil, fmt.Errorf("listing sync services: %w", err)
	}

	return services, nil
}

// Iterate implements twilio.SyncServicesClient.Iterate.
func (c *SyncServicesClient) Iterate(ctx context.Context) *twilio.PageIterator[twilio.SyncService] {
	return c.services.iterate(ctx, c.serviceURL(), pageSizeParams(constants.ServicesPageSize))
}

// Get implements twilio.SyncServicesClient.Get.
func (c *SyncServicesClient) Get(ctx context.Context, sid string) (*twilio.SyncService, error) {
	err := requireSIDs("service SID", sid)
	if err != nil {
		return nil, err
	}

	var service twilio.SyncService

	err = c.send(ctx, http.MethodGet, c.serviceURL(sid), nil, "", &service)
	if err != nil {
		return nil, fmt.Errorf("getting sync service: %w", err)
	}

	return &service, nil
}

// Update implements twilio.SyncServicesClient.Update.
func (c *SyncServicesClient) Update(ctx context.Context, sid string, params *twilio.SyncServiceParams) (*twilio.SyncService, error) {
	err := requireSIDs("service SID", sid)
	if err != nil {
		return nil, err
	}

	err = params.Validate()
	if err != nil {
		return nil, err
	}

	var service twilio.SyncService

	err = c.send(ctx, http.MethodPost, c.serviceURL(sid), params, "", &service)
	if err != nil {
		return nil, fmt.Errorf("updating sync service: %w", err)
	}

	return &service, nil
}

// Delete implements twilio.SyncServicesClient.Delete.
func (c *SyncServicesClient) Delete(ctx context.Context, sid string) error {
	err := requireSIDs("service SID", sid)
	if err != nil {
		return err
	}

	err = c.delete(ctx, c.serviceURL(sid))
	if err != nil {
		return fmt.Errorf("deleting sync service: %w", err)
	}

	return nil
}
