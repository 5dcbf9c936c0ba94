// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package postman

import (
	"encoding/json"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// decodeLoose decodes generic JSON data into out. Scalars of any JSON type are
// accepted for string fields, and "true"/"1" style strings for bool fields.
func decodeLoose(in, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       scalarToStringHook,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

func scalarToStringHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.String || data == nil || from.Kind() == reflect.String {
		return data, nil
	}
	switch v := data.(type) {
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
	return data, nil
}
