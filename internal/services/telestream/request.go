package telestream

import (
	"net/http"
	"strings"
)

const factoryIDParam = "factory_id"

// Request describes one API call relative to the client's base URL. Building a
// Request has no side effects; the Invoker signs and sends it.
type Request struct {
	Method string
	Path   string
	Query  *QueryParams
	Body   any
}

// Get builds a GET request scoped to factoryID.
func Get(factoryID, path string, query *QueryParams) Request {
	return newRequest(http.MethodGet, factoryID, path, query, nil)
}

// Post builds a POST request scoped to factoryID. body, when not nil, is sent
// as JSON.
func Post(factoryID, path string, query *QueryParams, body any) Request {
	return newRequest(http.MethodPost, factoryID, path, query, body)
}

// Put builds a PUT request scoped to factoryID.
func Put(factoryID, path string, query *QueryParams, body any) Request {
	return newRequest(http.MethodPut, factoryID, path, query, body)
}

// Delete builds a DELETE request scoped to factoryID.
func Delete(factoryID, path string) Request {
	return newRequest(http.MethodDelete, factoryID, path, nil, nil)
}

// newRequest copies query so the caller's list is never mutated. An empty
// factoryID produces an account-level request.
func newRequest(method, factoryID, path string, query *QueryParams, body any) Request {
	params := query.Clone()
	params.AddString(factoryIDParam, strings.TrimSpace(factoryID))
	return Request{
		Method: method,
		Path:   strings.TrimLeft(path, "/"),
		Query:  params,
		Body:   body,
	}
}
