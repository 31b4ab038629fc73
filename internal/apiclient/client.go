// Package apiclient is the Go client for the Afri Soutien API. It hides
// access-token expiry from callers: a request answered with 401 TOKEN_EXPIRED
// triggers one silent refresh and one retry of the original request.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New builds a client with a cookie jar so the HttpOnly session cookies ride
// along automatically.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

type apiError struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// Do sends the request and transparently retries once after a silent refresh
// when the server answers 401 TOKEN_EXPIRED. Every other status is surfaced
// as-is; if the refresh itself fails the original 401 is returned, not the
// refresh failure.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	// restore the body for callers that surface the original response
	resp.Body = io.NopCloser(bytes.NewReader(body))

	var apiErr apiError
	if jsonErr := json.Unmarshal(body, &apiErr); jsonErr != nil || apiErr.Code != "TOKEN_EXPIRED" {
		// some other 401 (bad credentials, missing token...) — no retry
		return resp, nil
	}

	if !c.refresh() {
		// surface the original 401, not the refresh failure
		return resp, nil
	}

	retry, err := cloneRequest(req)
	if err != nil {
		return resp, nil
	}
	retryResp, err := c.HTTP.Do(retry)
	if err != nil {
		return nil, err
	}
	return retryResp, nil
}

func (c *Client) refresh() bool {
	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/api/auth/refresh", nil)
	if err != nil {
		return false
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// cloneRequest rebuilds the request with the same method, headers and body.
func cloneRequest(req *http.Request) (*http.Request, error) {
	var body io.Reader
	if req.GetBody != nil {
		b, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		body = b
	}
	clone, err := http.NewRequest(req.Method, req.URL.String(), body)
	if err != nil {
		return nil, err
	}
	clone.Header = req.Header.Clone()
	return clone, nil
}

// Get issues a GET against the API and decodes the JSON response into out.
func (c *Client) Get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(path string, in, out interface{}) error {
	var buf []byte
	if in != nil {
		var err error
		buf, err = json.Marshal(in)
		if err != nil {
			return err
		}
	}
	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}
