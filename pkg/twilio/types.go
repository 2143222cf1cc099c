package twilio

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
)

// Static errors for err113 compliance.
var (
	ErrPageItemsMissing   = errors.New("page body has no items field")
	ErrPageItemsAmbiguous = errors.New("page body items field cannot be determined")
)

// PageMeta is the pagination metadata of one page. Twilio's v1 APIs nest it
// under "meta" with absolute URLs. The 2010 API puts it at the top level
// with server relative URIs. Both decode into this shape.
type PageMeta struct {
	Page            int     `json:"page"                        yaml:"page"`
	PageSize        int     `json:"page_size"                   yaml:"page_size"`
	FirstPageURL    string  `json:"first_page_url"              yaml:"first_page_url"`
	PreviousPageURL *string `json:"previous_page_url,omitempty" yaml:"previous_page_url,omitempty"`
	NextPageURL     *string `json:"next_page_url,omitempty"     yaml:"next_page_url,omitempty"`
	URL             string  `json:"url"                         yaml:"url"`
	// Key names the body field holding the items, e.g. "accounts".
	Key string `json:"key" yaml:"key"`
}

type wireMeta struct {
	Page            int     `json:"page"`
	PageSize        int     `json:"page_size"`
	FirstPageURL    string  `json:"first_page_url"`
	FirstPageURI    string  `json:"first_page_uri"`
	PreviousPageURL *string `json:"previous_page_url"`
	PreviousPageURI *string `json:"previous_page_uri"`
	NextPageURL     *string `json:"next_page_url"`
	NextPageURI     *string `json:"next_page_uri"`
	URL             string  `json:"url"`
	URI             string  `json:"uri"`
	Key             string  `json:"key"`
}

func (w wireMeta) normalize() PageMeta {
	return PageMeta{
		Page:            w.Page,
		PageSize:        w.PageSize,
		FirstPageURL:    firstNonEmpty(w.FirstPageURL, w.FirstPageURI),
		PreviousPageURL: firstNonEmptyPtr(w.PreviousPageURL, w.PreviousPageURI),
		NextPageURL:     firstNonEmptyPtr(w.NextPageURL, w.NextPageURI),
		URL:             firstNonEmpty(w.URL, w.URI),
		Key:             w.Key,
	}
}

// Page is one batch of a list endpoint. The items field name differs per
// resource family, so it is supplied through Meta.Key before decoding. If no
// key is preset, the key the server reports in "meta" is used, and failing
// that the only array valued field of the body.
type Page[T any] struct {
	Items []T      `json:"items" yaml:"items"`
	Meta  PageMeta `json:"meta"  yaml:"meta"`
}

// NewPage returns an empty page that decodes its items from the key field.
func NewPage[T any](key string) *Page[T] {
	return &Page[T]{Meta: PageMeta{Key: key}}
}

// HasNext reports whether a next page URL is present.
func (p *Page[T]) HasNext() bool {
	return p.Meta.NextPageURL != nil && *p.Meta.NextPageURL != ""
}

// NextURL returns the next page URL, or "" at the end of the collection.
func (p *Page[T]) NextURL() string {
	if !p.HasNext() {
		return ""
	}

	return *p.Meta.NextPageURL
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	var wire wireMeta

	if nested, ok := raw["meta"]; ok && string(nested) != "null" {
		err = json.Unmarshal(nested, &wire)
	} else {
		err = json.Unmarshal(data, &wire)
	}

	if err != nil {
		return fmt.Errorf("decoding page metadata: %w", err)
	}

	meta := wire.normalize()

	key := p.Meta.Key
	if key == "" {
		key = meta.Key
	}

	if key == "" {
		key, err = detectItemsKey(raw)
		if err != nil {
			return err
		}
	}

	itemsRaw, ok := raw[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrPageItemsMissing, key)
	}

	var items []T
	if string(itemsRaw) != "null" {
		err = json.Unmarshal(itemsRaw, &items)
		if err != nil {
			return fmt.Errorf("decoding page items %q: %w", key, err)
		}
	}

	meta.Key = key
	p.Items = items
	p.Meta = meta

	return nil
}

// ResolveNext makes a relative next page URI absolute against base.
func (p *Page[T]) ResolveNext(base string) error {
	if !p.HasNext() {
		return nil
	}

	resolved, err := ResolveURL(base, *p.Meta.NextPageURL)
	if err != nil {
		return err
	}

	p.Meta.NextPageURL = &resolved

	return nil
}

// ResolveURL resolves ref against base. Absolute refs are returned unchanged.
func ResolveURL(base, ref string) (string, error) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parsing page URL %q: %w", ref, err)
	}

	if refURL.IsAbs() {
		return ref, nil
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URL %q: %w", base, err)
	}

	return baseURL.ResolveReference(refURL).String(), nil
}

func detectItemsKey(raw map[string]json.RawMessage) (string, error) {
	var candidates []string

	for key, value := range raw {
		if len(value) > 0 && value[0] == '[' {
			candidates = append(candidates, key)
		}
	}

	if len(candidates) != 1 {
		sort.Strings(candidates)

		return "", fmt.Errorf("%w: candidates %v", ErrPageItemsAmbiguous, candidates)
	}

	return candidates[0], nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

func firstNonEmptyPtr(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}

	return nil
}
