package http

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/google/go-querystring/query"
)

// EncodeParams turns request parameters into form values. Structs are
// encoded through their url tags. Nil, url.Values and map[string]string are
// accepted as is.
func EncodeParams(params interface{}) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return url.Values{}, nil
	case url.Values:
		return p, nil
	case map[string]string:
		values := url.Values{}
		for key, value := range p {
			values.Set(key, value)
		}

		return values, nil
	}

	value := reflect.ValueOf(params)
	if value.Kind() == reflect.Ptr && value.IsNil() {
		return url.Values{}, nil
	}

	values, err := query.Values(params)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", params, err)
	}

	return values, nil
}
