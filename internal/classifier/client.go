package classifier

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// uploadField is the multipart form field the endpoint reads image bytes from.
const uploadField = "files"

// Options configures a classification client.
type Options struct {
	Endpoint          string
	VerifyTLS         bool
	Timeout           time.Duration
	NormalizeNegative bool
	NegativeLabel     string
	UnclassifiedLabel string
}

// Client submits images to a remote inference endpoint.
type Client struct {
	endpoint          string
	http              *http.Client
	normalizeNegative bool
	negativeLabel     string
	unclassifiedLabel string
}

// NewClient constructs a client for the configured endpoint.
func NewClient(opts Options) *Client {
	transport := http.DefaultTransport
	if !opts.VerifyTLS {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &Client{
		endpoint: opts.Endpoint,
		http: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		normalizeNegative: opts.NormalizeNegative,
		negativeLabel:     opts.NegativeLabel,
		unclassifiedLabel: opts.UnclassifiedLabel,
	}
}

// response is the endpoint's JSON body shape. A success carries a
// "classified" object of label -> confidence; a failure carries
// "result": "fail".
type response struct {
	Result     string             `json:"result"`
	Classified map[string]float64 `json:"classified"`
}

// Classify uploads one file and interprets the endpoint's response.
// It always returns a usable Result: on any transport or application
// failure the result is a placeholder and the error explains why, so a
// single file's failure never aborts directory processing.
func (c *Client) Classify(ctx context.Context, dir, name string) (Result, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return Placeholder(name, 0), fmt.Errorf("read image: %w", err)
	}

	started := time.Now()
	status, body, err := c.upload(ctx, name, data)
	elapsed := time.Since(started)
	if err != nil {
		return Placeholder(name, elapsed), fmt.Errorf("upload %s: %w", name, err)
	}
	if !responseAccepted(status, body) {
		return Placeholder(name, elapsed), fmt.Errorf("endpoint rejected %s (status %d)", name, status)
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Classified) == 0 {
		return Placeholder(name, elapsed), fmt.Errorf("response for %s has no classified labels", name)
	}

	result := Result{Filename: name, Duration: elapsed}
	// When the endpoint emits several labels for one file the last pair
	// iterated wins. Single-label responses are the normal case.
	for label, confidence := range parsed.Classified {
		value := confidence
		if c.normalizeNegative && label == c.negativeLabel {
			label = c.unclassifiedLabel
			value = 0
		}
		result.Label = label
		result.Confidence = &value
	}
	return result, nil
}

// upload posts the image bytes as a multipart form and returns the raw
// response status and body.
func (c *Client) upload(ctx context.Context, name string, data []byte) (int, []byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(uploadField, name)
	if err != nil {
		return 0, nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return 0, nil, fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return 0, nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// responseAccepted applies the two-tier validity check: the transport
// must report success, and a body that is valid JSON with
// "result": "fail" is rejected. Any other valid or unparsable body is
// accepted.
func responseAccepted(status int, body []byte) bool {
	if status < 200 || status >= 300 {
		return false
	}
	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return true
	}
	return parsed.Result != "fail"
}
