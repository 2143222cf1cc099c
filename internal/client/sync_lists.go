package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// SyncListsClient implements twilio.SyncListsClient.
type SyncListsClient struct {
	syncBase

	lists collection[twilio.SyncList]
}

func (b syncBase) listsURL(serviceSID string, segments ...string) string {
	return b.serviceURL(append([]string{serviceSID, "Lists"}, segments...)...)
}

// Create implements twilio.SyncListsClient.Create.
func (c *SyncListsClient) Create(ctx context.Context, serviceSID string, params *twilio.SyncCollectionCreateParams) (*twilio.SyncList, error) {
	err := requireSIDs("service SID", serviceSID)
	if err != nil {
		return nil, err
	}

	var list twilio.SyncList

	err = c.send(ctx, http.MethodPost, c.listsURL(serviceSID), params, "", &list)
	if err != nil {
		return nil, fmt.Errorf("creating sync list: %w", err)
	}

	return &list, nil
}

// List implements twilio.SyncListsClient.List.
func (c *SyncListsClient) List(ctx context.Context, serviceSID string) ([]twilio.SyncList, error) {
	err := requireSIDs("service SID", serviceSID)
	if err != nil {
		return nil, err
	}

	lists, err := c.lists.list(ctx, c.listsURL(serviceSID), pageSizeParams(constants.StandardPageSize))
	if err != nil {
		return nil, fmt.Errorf("listing sync lists: %w", err)
	}

	return lists, nil
}

// Iterate implements twilio.SyncListsClient.Iterate.
func (c *SyncListsClient) Iterate(ctx context.Context, serviceSID string) *twilio.PageIterator[twilio.SyncList] {
	err := requireSIDs("service SID", serviceSID)
	if err != nil {
		return failedIterator[twilio.SyncList](ctx, err)
	}

	return c.lists.iterate(ctx, c.listsURL(serviceSID), pageSizeParams(constants.StandardPageSize))
}

// Get implements twilio.SyncListsClient.Get.
func (c *SyncListsClient) Get(ctx context.Context, serviceSID, sid string) (*twilio.SyncList, error) {
	err := requireSIDs("service SID", serviceSID, "list SID", sid)
	if err != nil {
		return nil, err
	}

	var list twilio.SyncList

	err = c.send(ctx, http.MethodGet, c.listsURL(serviceSID, sid), nil, "", &list)
	if err != nil {
		return nil, fmt.Errorf("getting sync list: %w", err)
	}

	return &list, nil
}

// Update implements twilio.SyncListsClient.Update.
func (c *SyncListsClient) Update(
	ctx context.Context, serviceSID, sid string, params *twilio.SyncCollectionUpdateParams,
) (*twilio.SyncList, error) {
	err := requireSIDs("service SID", serviceSID, "list SID", sid)
	if err != nil {
		return nil, err
	}

	var list twilio.SyncList

	err = c.send(ctx, http.MethodPost, c.listsURL(serviceSID, sid), params, "", &list)
	if err != nil {
		return nil, fmt.Errorf("updating sync list: %w", err)
	}

	return &list, nil
}

// Delete implements twilio.SyncListsClient.Delete.
func (c *SyncListsClient) Delete(ctx context.Context, serviceSID, sid string) error {
	err := requireSIDs("service SID", serviceSID, "list SID", sid)
	if err != nil {
		return err
	}

	err = c.delete(ctx, c.listsURL(serviceSID, sid))
	if err != nil {
		return fmt.Errorf("deleting sync list: %w", err)
	}

	return nil
}

// SyncListItemsClient implements twilio.SyncListItemsClient.
type SyncListItemsClient struct {
	syncBase

	items collection[twilio.SyncListItem]
}

func (c *SyncListItemsClient) itemsURL(serviceSID, listSID string, segments ...string) string {
	return c.listsURL(serviceSID, append([]string{listSID, "Items"}, segments...)...)
}

func indexSegment(index uint32) string {
	return strconv.FormatUint(uint64(index), 10)
}

// Create implements twilio.SyncListItemsClient.Create.
func (c *SyncListItemsClient) Create(
	ctx context.Context, serviceSID, listSID string, params *twilio.SyncListItemCreateParams,
) (*twilio.SyncListItem, error) {
	err := requireSIDs("service SID", serviceSID, "list SID", listSID)
	if err != nil {
		return nil, err
	}

	var item twilio.SyncListItem

	err = c.send(ctx, http.MethodPost, c.itemsURL(serviceSID, listSID), params, "", &item)
	if err != nil {
		return nil, fmt.Errorf("creating sync list item: %w", err)
	}

	return &item, nil
}

// List implements twilio.SyncListItemsClient.List.
func (c *SyncListItemsClient) List(
	ctx context.Context, serviceSID, listSID string, params *twilio.SyncItemListParams,
) ([]twilio.SyncListItem, error) {
	err := validateItemList(params, "service SID", serviceSID, "list SID", listSID)
	if err != nil {
		return nil, err
	}

	items, err := c.items.list(ctx, c.itemsURL(serviceSID, listSID), params)
	if err != nil {
		return nil, fmt.Errorf("listing sync list items: %w", err)
	}

	return items, nil
}

// Iterate implements twilio.SyncListItemsClient.Iterate.
func (c *SyncListItemsClient) Iterate(
	ctx context.Context, serviceSID, listSID string, params *twilio.SyncItemListParams,
) *twilio.PageIterator[twilio.SyncListItem] {
	err := validateItemList(params, "service SID", serviceSID, "list SID", listSID)
	if err != nil {
		return failedIterator[twilio.SyncListItem](ctx, err)
	}

	return c.items.iterate(ctx, c.itemsURL(serviceSID, listSID), params)
}

// Get implements twilio.SyncListItemsClient.Get.
func (c *SyncListItemsClient) Get(ctx context.Context, serviceSID, listSID string, index uint32) (*twilio.SyncListItem, error) {
	err := requireSIDs("service SID", serviceSID, "list SID", listSID)
	if err != nil {
		return nil, err
	}

	var item twilio.SyncListItem

	err = c.send(ctx, http.MethodGet, c.itemsURL(serviceSID, listSID, indexSegment(index)), nil, "", &item)
	if err != nil {
		return nil, fmt.Errorf("getting sync list item: %w", err)
	}

	return &item, nil
}

// Update implements twilio.SyncListItemsClient.Update.
func (c *SyncListItemsClient) Update(
	ctx context.Context, serviceSID, listSID string, index uint32, params *twilio.SyncItemUpdateParams,
) (*twilio.SyncListItem, error) {
	err := requireSIDs("service SID", serviceSID, "list SID", listSID)
	if err != nil {
		return nil, err
	}

	var item twilio.SyncListItem

	err = c.send(ctx, http.MethodPost, c.itemsURL(serviceSID, listSID, indexSegment(index)), params, ifMatchOf(params), &item)
	if err != nil {
		return nil, fmt.Errorf("updating sync list item: %w", err)
	}

	return &item, nil
}

// Delete implements twilio.SyncListItemsClient.Delete.
func (c *SyncListItemsClient) Delete(ctx context.Context, serviceSID, listSID string, index uint32) error {
	err := requireSIDs("service SID", serviceSID, "list SID", listSID)
	if err != nil {
		return err
	}

	err = c.delete(ctx, c.itemsURL(serviceSID, listSID, indexSegment(index)))
	if err != nil {
		return fmt.Errorf("deleting sync list item: %w", err)
	}

	return nil
}
