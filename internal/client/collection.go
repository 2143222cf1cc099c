package client

import (
	"context"
	"net/http"

	internalhttp "github.com/TristanBlackwell/twilly/internal/http"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// collection lists one resource family. The items field of a page body is
// fixed per family, e.g. "accounts" or "documents".
type collection[T any] struct {
	httpClient *internalhttp.Client
	baseURL    string
	key        string
	maxPages   int
}

func newCollection[T any](httpClient *internalhttp.Client, baseURL, key string, maxPages int) collection[T] {
	return collection[T]{
		httpClient: httpClient,
		baseURL:    baseURL,
		key:        key,
		maxPages:   maxPages,
	}
}

// page fetches one page. Relative next page URIs are resolved against the
// family's base URL so follow-up requests always use an absolute URL.
func (c collection[T]) page(ctx context.Context, pageURL string, params interface{}) (*twilio.Page[T], error) {
	page := twilio.NewPage[T](c.key)

	err := c.httpClient.SendInto(ctx, &internalhttp.Request{
		Method: http.MethodGet,
		URL:    pageURL,
		Params: params,
	}, page)
	if err != nil {
		return nil, err
	}

	err = page.ResolveNext(c.baseURL)
	if err != nil {
		return nil, &twilio.ParseError{Err: err}
	}

	return page, nil
}

// next follows a next page URL. It carries no parameters of its own.
func (c collection[T]) next(ctx context.Context, pageURL string) (*twilio.Page[T], error) {
	return c.page(ctx, pageURL, nil)
}

// list eagerly reads every page. params only apply to the first request.
func (c collection[T]) list(ctx context.Context, listURL string, params interface{}) ([]T, error) {
	first, err := c.page(ctx, listURL, params)
	if err != nil {
		return nil, err
	}

	items, err := twilio.FetchAll(ctx, first, c.next, twilio.WithMaxPages(c.maxPages))
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

// iterate returns a lazy walk over the same pages list would read.
func (c collection[T]) iterate(ctx context.Context, listURL string, params interface{}) *twilio.PageIterator[T] {
	return twilio.NewPageIterator(ctx, func(ctx context.Context) (*twilio.Page[T], error) {
		return c.page(ctx, listURL, params)
	}, c.next)
}

// failedIterator reports err on the first call without making any request.
func failedIterator[T any](ctx context.Context, err error) *twilio.PageIterator[T] {
	return twilio.NewPageIterator(ctx, func(context.Context) (*twilio.Page[T], error) {
		return nil, err
	}, nil)
}
