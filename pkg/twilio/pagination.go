package twilio

import (
	"context"
	"fmt"
)

// PageFetcher retrieves the page at an absolute URL. Follow-up requests carry
// no parameters of their own since the URL already encodes filter and paging
// state.
type PageFetcher[T any] func(ctx context.Context, pageURL string) (*Page[T], error)

// FirstPageFunc retrieves the first page of a collection.
type FirstPageFunc[T any] func(ctx context.Context) (*Page[T], error)

type fetchOptions struct {
	maxPages int
}

// FetchOption configures FetchAll.
type FetchOption func(*fetchOptions)

// WithMaxPages bounds the number of pages FetchAll reads, counting the first.
// Reaching the bound without exhausting the collection is a ValidationError.
// Zero or less means unbounded, the default.
func WithMaxPages(n int) FetchOption {
	return func(o *fetchOptions) {
		o.maxPages = n
	}
}

// FetchAll eagerly walks a collection starting from first, following next
// page URLs until none remains. Items keep server order and are concatenated
// in page order. Any failure aborts the walk and nothing is returned but the
// error.
func FetchAll[T any](ctx context.Context, first *Page[T], fetch PageFetcher[T], opts ...FetchOption) ([]T, error) {
	options := fetchOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	if first == nil {
		return nil, nil
	}

	results := first.Items
	current := first
	fetched := 1

	for current.HasNext() {
		if options.maxPages > 0 && fetched >= options.maxPages {
			return nil, fmt.Errorf("%w: %w", ErrMaxPagesExceeded,
				NewValidationError("collection has more than %d pages", options.maxPages))
		}

		err := ctx.Err()
		if err != nil {
			return nil, &NetworkError{Err: err}
		}

		next, err := fetch(ctx, current.NextURL())
		if err != nil {
			return nil, err
		}

		if next == nil {
			break
		}

		results = append(results, next.Items...)
		current = next
		fetched++
	}

	return results, nil
}

// PageIterator lazily walks a collection one page at a time. It is
// restartable through Reset. It is not safe for concurrent use.
type PageIterator[T any] struct {
	ctx   context.Context //nolint:containedctx // iterator is bound to one walk
	first FirstPageFunc[T]
	fetch PageFetcher[T]

	page  *Page[T]
	index int
	pages int
	err   error
}

// NewPageIterator creates an iterator. No request is made until HasNext or
// Next is called.
func NewPageIterator[T any](ctx context.Context, first FirstPageFunc[T], fetch PageFetcher[T]) *PageIterator[T] {
	return &PageIterator[T]{
		ctx:   ctx,
		first: first,
		fetch: fetch,
	}
}

// HasNext reports whether another item is available, fetching pages as
// needed. A fetch failure ends the iteration and is reported by Err.
func (it *PageIterator[T]) HasNext() bool {
	for {
		if it.err != nil {
			return false
		}

		if it.page != nil && it.index < len(it.page.Items) {
			return true
		}

		if it.page != nil && !it.page.HasNext() {
			return false
		}

		it.load()
	}
}

// Next returns the next item.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if !it.HasNext() {
		if it.err != nil {
			return zero, it.err
		}

		return zero, ErrNoMorePages
	}

	item := it.page.Items[it.index]
	it.index++

	return item, nil
}

// Err returns the error that stopped the iteration, if any.
func (it *PageIterator[T]) Err() error {
	return it.err
}

// Pages returns the number of pages fetched so far.
func (it *PageIterator[T]) Pages() int {
	return it.pages
}

// Reset rewinds the iterator so the next call starts from the first page.
func (it *PageIterator[T]) Reset() {
	it.page = nil
	it.index = 0
	it.pages = 0
	it.err = nil
}

// All drains the remaining items.
func (it *PageIterator[T]) All() ([]T, error) {
	var results []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return nil, err
		}

		results = append(results, item)
	}

	if it.err != nil {
		return nil, it.err
	}

	return results, nil
}

// ForEach calls fn for every remaining item and stops at the first error.
func (it *PageIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return it.err
}

func (it *PageIterator[T]) load() {
	err := it.ctx.Err()
	if err != nil {
		it.err = &NetworkError{Err: err}

		return
	}

	var page *Page[T]

	if it.page == nil {
		page, err = it.first(it.ctx)
	} else {
		page, err = it.fetch(it.ctx, it.page.NextURL())
	}

	if err != nil {
		it.err = err

		return
	}

	if page == nil {
		page = &Page[T]{}
	}

	it.page = page
	it.index = 0
	it.pages++
}
