// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package lms

import (
	"encoding/json"
	"math"
	"strconv"
)

// Response is the flat result mapping of one query. Every getter either
// returns a value of the requested type or a FieldMissingError /
// FieldTypeMismatchError; none of them converts between encodings.
type Response struct {
	result map[string]any
}

func NewResponse(result map[string]any) Response {
	if result == nil {
		result = map[string]any{}
	}
	return Response{result: result}
}

func (r Response) Has(key string) bool {
	_, ok := r.result[key]
	return ok
}

func (r Response) Len() int {
	return len(r.result)
}

func (r Response) get(key string) (any, error) {
	value, ok := r.result[key]
	if !ok {
		return nil, &FieldMissingError{Field: key}
	}
	return value, nil
}

// GetUint returns a native number holding a non-negative integer.
func (r Response) GetUint(key string) (uint64, error) {
	value, err := r.get(key)
	if err != nil {
		return 0, err
	}
	if n, ok := asUint(value); ok {
		return n, nil
	}
	return 0, &FieldTypeMismatchError{Field: key, Kind: KindUint}
}

// GetFloat returns a native number.
func (r Response) GetFloat(key string) (float64, error) {
	value, err := r.get(key)
	if err != nil {
		return 0, err
	}
	if f, ok := asFloat(value); ok {
		return f, nil
	}
	return 0, &FieldTypeMismatchError{Field: key, Kind: KindFloat}
}

func (r Response) GetString(key string) (string, error) {
	value, err := r.get(key)
	if err != nil {
		return "", err
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", &FieldTypeMismatchError{Field: key, Kind: KindString}
}

func (r Response) GetArray(key string) ([]any, error) {
	value, err := r.get(key)
	if err != nil {
		return nil, err
	}
	if a, ok := value.([]any); ok {
		return a, nil
	}
	return nil, &FieldTypeMismatchError{Field: key, Kind: KindArray}
}

// GetRecords returns an array of mappings, each wrapped as a Response.
func (r Response) GetRecords(key string) ([]Response, error) {
	array, err := r.GetArray(key)
	if err != nil {
		return nil, err
	}
	records := make([]Response, 0, len(array))
	for _, item := range array {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &FieldTypeMismatchError{Field: key, Kind: KindRecord}
		}
		records = append(records, NewResponse(m))
	}
	return records, nil
}

func asUint(value any) (uint64, bool) {
	switch v := value.(type) {
	case json.Number:
		if n, err := strconv.ParseUint(v.String(), 10, 64); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatToUint(f)
	case float64:
		return floatToUint(v)
	case float32:
		return floatToUint(float64(v))
	case int:
		return intToUint(int64(v))
	case int32:
		return intToUint(int64(v))
	case int64:
		return intToUint(v)
	case uint:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	}
	return 0, false
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

func floatToUint(f float64) (uint64, bool) {
	if f < 0 || f != math.Trunc(f) || f >= math.Exp2(64) {
		return 0, false
	}
	return uint64(f), true
}

func intToUint(i int64) (uint64, bool) {
	if i < 0 {
		return 0, false
	}
	return uint64(i), true
}
