package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// SyncMapsClient implements twilio.SyncMapsClient.
type SyncMapsClient struct {
	syncBase

	maps collection[twilio.SyncMap]
}

func (b syncBase) mapsURL(serviceSID string, segments ...string) string {
	return b.serviceURL(append([]string{serviceSID, "Maps"}, segments...)...)
}

// Create implements twilio.SyncMapsClient.Create.
func (c *SyncMapsClient) Create(ctx context.Context, serviceSID string, params *twilio.SyncCollectionCreateParams) (*twilio.SyncMap, error) {
	err := requireSIDs("service SID", serviceSID)
	if err != nil {
		return nil, err
	}

	var syncMap twilio.SyncMap

	err = c.send(ctx, http.MethodPost, c.mapsURL(serviceSID), params, "", &syncMap)
	if err != nil {
		return nil, fmt.Errorf("creating sync map: %w", err)
	}

	return &syncMap, nil
}

// List implements twilio.SyncMapsClient.List.
func (c *SyncMapsClient) List(ctx context.Context, serviceSID string) ([]twilio.SyncMap, error) {
	err := requireSIDs("service SID", serviceSID)
	if err != nil {
		return nil, err
	}

	maps, err := c.maps.list(ctx, c.mapsURL(serviceSID), pageSizeParams(constants.StandardPageSize))
	if err != nil {
		return nil, fmt.Errorf("listing sync maps: %w", err)
	}

	return maps, nil
}

// Iterate implements twilio.SyncMapsClient.Iterate.
func (c *SyncMapsClient) Iterate(ctx context.Context, serviceSID string) *twilio.PageIterator[twilio.SyncMap] {
	err := requireSIDs("service SID", serviceSID)
	if err != nil {
		return failedIterator[twilio.SyncMap](ctx, err)
	}

	return c.maps.iterate(ctx, c.mapsURL(serviceSID), pageSizeParams(constants.StandardPageSize))
}

// Get implements twilio.SyncMapsClient.Get.
func (c *SyncMapsClient) Get(ctx context.Context, serviceSID, sid string) (*twilio.SyncMap, error) {
	err := requireSIDs("service SID", serviceSID, "map SID", sid)
	if err != nil {
		return nil, err
	}

	var syncMap twilio.SyncMap

	err = c.send(ctx, http.MethodGet, c.mapsURL(serviceSID, sid), nil, "", &syncMap)
	if err != nil {
		return nil, fmt.Errorf("getting sync map: %w", err)
	}

	return &syncMap, nil
}

// Update implements twilio.SyncMapsClient.Update.
func (c *SyncMapsClient) Update(
	ctx context.Context, serviceSID, sid string, params *twilio.SyncCollectionUpdateParams,
) (*twilio.SyncMap, error) {
	err := requireSIDs("service SID", serviceSID, "map SID", sid)
	if err != nil {
		return nil, err
	}

	var syncMap twilio.SyncMap

	err = c.send(ctx, http.MethodPost, c.mapsURL(serviceSID, sid), params, "", &syncMap)
	if err != nil {
		return nil, fmt.Errorf("updating sync map: %w", err)
	}

	return &syncMap, nil
}

// Delete implements twilio.SyncMapsClient.Delete.
func (c *SyncMapsClient) Delete(ctx context.Context, serviceSID, sid string) error {
	err := requireSIDs("service SID", serviceSID, "map SID", sid)
	if err != nil {
		return err
	}

	err = c.delete(ctx, c.mapsURL(serviceSID, sid))
	if err != nil {
		return fmt.Errorf("deleting sync map: %w", err)
	}

	return nil
}

// SyncMapItemsClient implements twilio.SyncMapItemsClient.
type SyncMapItemsClient struct {
	syncBase

	items collection[twilio.SyncMapItem]
}

func (c *SyncMapItemsClient) itemsURL(serviceSID, mapSID string, segments ...string) string {
	return c.mapsURL(serviceSID, append([]string{mapSID, "Items"}, segments...)...)
}

// Create implements twilio.SyncMapItemsClient.Create.
func (c *SyncMapItemsClient) Create(
	ctx context.Context, serviceSID, mapSID string, params *twilio.SyncMapItemCreateParams,
) (*twilio.SyncMapItem, error) {
	err := requireSIDs("service SID", serviceSID, "map SID", mapSID)
	if err != nil {
		return nil, err
	}

	if params == nil || params.Key == "" {
		return nil, twilio.NewValidationError("map item key is required")
	}

	var item twilio.SyncMapItem

	err = c.send(ctx, http.MethodPost, c.itemsURL(serviceSID, mapSID), params, "", &item)
	if err != nil {
		return nil, fmt.Errorf("creating sync map item: %w", err)
	}

	return &item, nil
}

// List implements twilio.SyncMapItemsClient.List.
func (c *SyncMapItemsClient) List(
	ctx context.Context, serviceSID, mapSID string, params *twilio.SyncItemListParams,
) ([]twilio.SyncMapItem, error) {
	err := validateItemList(params, "service SID", serviceSID, "map SID", mapSID)
	if err != nil {
		return nil, err
	}

	items, err := c.items.list(ctx, c.itemsURL(serviceSID, mapSID), params)
	if err != nil {
		return nil, fmt.Errorf("listing sync map items: %w", err)
	}

	return items, nil
}

// Iterate implements twilio.SyncMapItemsClient.Iterate.
func (c *SyncMapItemsClient) Iterate(
	ctx context.Context, serviceSID, mapSID string, params *twilio.SyncItemListParams,
) *twilio.PageIterator[twilio.SyncMapItem] {
	err := validateItemList(params, "service SID", serviceSID, "map SID", mapSID)
	if err != nil {
		return failedIterator[twilio.SyncMapItem](ctx, err)
	}

	return c.items.iterate(ctx, c.itemsURL(serviceSID, mapSID), params)
}

// Get implements twilio.SyncMapItemsClient.Get.
func (c *SyncMapItemsClient) Get(ctx context.Context, serviceSID, mapSID, key string) (*twilio.SyncMapItem, error) {
	err := requireSIDs("service SID", serviceSID, "map SID", mapSID, "map item key", key)
	if err != nil {
		return nil, err
	}

	var item twilio.SyncMapItem

	err = c.send(ctx, http.MethodGet, c.itemsURL(serviceSID, mapSID, key), nil, "", &item)
	if err != nil {
		return nil, fmt.Errorf("getting sync map item: %w", err)
	}

	return &item, nil
}

// Update implements twilio.SyncMapItemsClient.Update.
func (c *SyncMapItemsClient) Update(
	ctx context.Context, serviceSID, mapSID, key string, params *twilio.SyncItemUpdateParams,
) (*twilio.SyncMapItem, error) {
	err := requireSIDs("service SID", serviceSID, "map SID", mapSID, "map item key", key)
	if err != nil {
		return nil, err
	}

	var item twilio.SyncMapItem

	err = c.send(ctx, http.MethodPost, c.itemsURL(serviceSID, mapSID, key), params, ifMatchOf(params), &item)
	if err != nil {
		return nil, fmt.Errorf("updating sync map item: %w", err)
	}

	return &item, nil
}

// Delete implements twilio.SyncMapItemsClient.Delete.
func (c *SyncMapItemsClient) Delete(ctx context.Context, serviceSID, mapSID, key string) error {
	err := requireSIDs("service SID", serviceSID, "map SID", mapSID, "map item key", key)
	if err != nil {
		return err
	}

	err = c.delete(ctx, c.itemsURL(serviceSID, mapSID, key))
	if err != nil {
		return fmt.Errorf("deleting sync map item: %w", err)
	}

	return nil
}

func validateItemList(params *twilio.SyncItemListParams, sids ...string) error {
	err := requireSIDs(sids...)
	if err != nil {
		return err
	}

	return params.Validate()
}

func ifMatchOf(params *twilio.SyncItemUpdateParams) string {
	if params == nil {
		return ""
	}

	return params.IfMatch
}
