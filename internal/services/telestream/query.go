package telestream

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParam is a single name/value pair of a QueryParams list.
type QueryParam struct {
	Name  string
	Value string
}

// QueryParams is an ordered list of query parameters. Each name appears at
// most once; setting an existing name replaces its value in place.
type QueryParams struct {
	params []QueryParam
}

// NewQueryParams returns an empty parameter list.
func NewQueryParams() *QueryParams {
	return &QueryParams{}
}

// Add sets name to value unconditionally.
func (q *QueryParams) Add(name, value string) *QueryParams {
	for i := range q.params {
		if q.params[i].Name == name {
			q.params[i].Value = value
			return q
		}
	}
	q.params = append(q.params, QueryParam{Name: name, Value: value})
	return q
}

// AddString sets name only when value is not blank.
func (q *QueryParams) AddString(name, value string) *QueryParams {
	if strings.TrimSpace(value) == "" {
		return q
	}
	return q.Add(name, value)
}

// AddBool sets name to "true" or "false" when value is not nil.
func (q *QueryParams) AddBool(name string, value *bool) *QueryParams {
	if value == nil {
		return q
	}
	return q.Add(name, strconv.FormatBool(*value))
}

// AddInt sets name to the base-10 form of value when value is not nil.
func (q *QueryParams) AddInt(name string, value *int) *QueryParams {
	if value == nil {
		return q
	}
	return q.Add(name, strconv.Itoa(*value))
}

// AddInt64 sets name to the base-10 form of value.
func (q *QueryParams) AddInt64(name string, value int64) *QueryParams {
	return q.Add(name, strconv.FormatInt(value, 10))
}

// Get returns the value stored for name.
func (q *QueryParams) Get(name string) (string, bool) {
	if q == nil {
		return "", false
	}
	for _, p := range q.params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Len reports the number of parameters.
func (q *QueryParams) Len() int {
	if q == nil {
		return 0
	}
	return len(q.params)
}

// Params returns a copy of the parameters in insertion order.
func (q *QueryParams) Params() []QueryParam {
	if q == nil {
		return nil
	}
	out := make([]QueryParam, len(q.params))
	copy(out, q.params)
	return out
}

// Clone returns an independent copy; a nil receiver yields an empty list.
func (q *QueryParams) Clone() *QueryParams {
	return &QueryParams{params: q.Params()}
}

// Encode renders the parameters in insertion order as a raw query string.
func (q *QueryParams) Encode() string {
	if q.Len() == 0 {
		return ""
	}
	parts := make([]string, 0, len(q.params))
	for _, p := range q.params {
		parts = append(parts, escape(p.Name)+"="+escape(p.Value))
	}
	return strings.Join(parts, "&")
}

// escape applies RFC 3986 escaping, which the request signature is computed over.
func escape(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

// Bool returns a pointer to v for optional boolean arguments.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v for optional integer arguments.
func Int(v int) *int { return &v }
