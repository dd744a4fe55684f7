// Package apiclient talks to the catalog REST API (/api/products, /api/categories).
package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"catalogview/internal/domain"
)

// APIError is a non-success HTTP status. Message is empty when the body carried none.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// TransportError means the request never produced a response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is a success status whose body could not be read as the expected JSON.
type DecodeError struct {
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed response (status %d): %v", e.Status, e.Err)
}
func (e *DecodeError) Unwrap() error { return e.Err }

type Client struct {
	baseURL string
	timeout time.Duration
	http    *fiber.Client
}

// New builds a client for baseURL, e.g. "http://localhost:8080/api".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http: &fiber.Client{
			UserAgent:   "catalogview",
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		},
	}
}

func (c *Client) do(op string, a *fiber.Agent) (int, []byte, error) {
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return 0, nil, &TransportError{Op: op, Err: errors.Join(errs...)}
	}
	if code < 200 || code > 299 {
		return code, body, apiError(code, body)
	}
	return code, body, nil
}

// apiError pulls a human-readable message out of a failure body when there is one.
func apiError(code int, body []byte) *APIError {
	e := &APIError{Status: code}
	var eb domain.ErrorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		e.Message = eb.Message
		if e.Message == "" {
			e.Message = eb.Error
		}
	}
	return e
}

func (c *Client) Categories() ([]domain.Category, error) {
	code, body, err := c.do("categories.list", c.http.Get(c.baseURL+"/categories"))
	if err != nil {
		return nil, err
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &DecodeError{Status: code, Err: err}
	}
	out := make([]domain.Category, 0, len(raw))
	for _, r := range raw {
		var cat domain.Category
		if err := lenient(json.Unmarshal(r, &cat)); err != nil {
			return nil, &DecodeError{Status: code, Err: err}
		}
		out = append(out, cat)
	}
	return out, nil
}

// Products decodes item by item; a field with the wrong type is left at its zero value.
func (c *Client) Products() ([]domain.Product, error) {
	code, body, err := c.do("products.list", c.http.Get(c.baseURL+"/products"))
	if err != nil {
		return nil, err
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &DecodeError{Status: code, Err: err}
	}
	out := make([]domain.Product, 0, len(raw))
	for _, r := range raw {
		p, err := decodeProduct(r)
		if err != nil {
			return nil, &DecodeError{Status: code, Err: err}
		}
		out = append(out, p)
	}
	return out, nil
}

func decodeProduct(r json.RawMessage) (domain.Product, error) {
	var p domain.Product
	err := lenient(json.Unmarshal(r, &p))
	if err == nil {
		return p, nil
	}
	// UnitPrice is the only field with a custom decoder; an unreadable price stays zero.
	type alias domain.Product
	var shadow struct {
		alias
		UnitPrice json.RawMessage `json:"UnitPrice"`
	}
	if lenient(json.Unmarshal(r, &shadow)) != nil {
		return domain.Product{}, err
	}
	return domain.Product(shadow.alias), nil
}

// CreateProduct posts np. A success body that is not JSON still counts as created, with ID 0.
func (c *Client) CreateProduct(np domain.NewProduct) (domain.CreatedProduct, error) {
	a := c.http.Post(c.baseURL + "/products").JSON(np, "application/json; charset=UTF-8")
	_, body, err := c.do("products.create", a)
	if err != nil {
		return domain.CreatedProduct{}, err
	}
	var out domain.CreatedProduct
	_ = json.Unmarshal(body, &out)
	return out, nil
}

// DeleteProduct removes the product with the given id. An empty or non-JSON success body is fine.
func (c *Client) DeleteProduct(id int) (domain.DeleteResult, error) {
	_, body, err := c.do("products.delete", c.http.Delete(c.baseURL+"/products/"+strconv.Itoa(id)))
	if err != nil {
		return domain.DeleteResult{}, err
	}
	var out domain.DeleteResult
	_ = json.Unmarshal(body, &out)
	return out, nil
}

// lenient drops type mismatches, which json.Unmarshal reports after filling every other field.
func lenient(err error) error {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return nil
	}
	return err
}
