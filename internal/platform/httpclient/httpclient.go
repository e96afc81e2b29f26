package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	// maxErrorBody limita lo que leemos de respuestas no-2xx.
	maxErrorBody = 1 << 20
)

// Client envuelve *http.Client con helpers comunes para adapters.
type Client struct {
	HTTP    *http.Client
	BaseURL string // opcional; si se define, los Do* aceptan paths relativos
}

// New crea un Client con timeout razonable.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewWithBaseURL crea un Client con BaseURL + timeout.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	if strings.TrimSpace(baseURL) == "" {
		return c, nil
	}
	_, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// DoJSON hace un request JSON.
// - in: body a enviar (opcional). Si nil => no body.
// - out: donde decodificar JSON (opcional). Si nil => ignora body.
// Retorna *HTTPError si status no es 2xx.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	h := map[string]string{"Accept": "application/json"}
	if in != nil {
		h["Content-Type"] = "application/json"
	}
	for k, v := range headers {
		h[k] = v
	}

	raw, _, err := c.do(ctx, method, pathOrURL, h, body)
	if err != nil {
		return err
	}
	return decodeInto(raw, out)
}

// FilePart describe el único archivo de un upload multipart.
type FilePart struct {
	Field       string // "image" / "audio"
	Filename    string
	ContentType string
	Data        []byte
}

// DoMultipart hace POST multipart/form-data con exactamente un archivo y decodifica JSON en out.
func (c *Client) DoMultipart(ctx context.Context, pathOrURL string, part FilePart, out any) error {
	if strings.TrimSpace(part.Field) == "" {
		return errors.New("httpclient: multipart field required")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	filename := part.Filename
	if strings.TrimSpace(filename) == "" {
		filename = part.Field
	}
	ct := part.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, part.Field, filename))
	hdr.Set("Content-Type", ct)

	fw, err := mw.CreatePart(hdr)
	if err != nil {
		return fmt.Errorf("httpclient: multipart part: %w", err)
	}
	if _, err := fw.Write(part.Data); err != nil {
		return fmt.Errorf("httpclient: multipart write: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("httpclient: multipart close: %w", err)
	}

	raw, _, err := c.do(ctx, http.MethodPost, pathOrURL, map[string]string{
		"Accept":       "application/json",
		"Content-Type": mw.FormDataContentType(),
	}, &buf)
	if err != nil {
		return err
	}
	return decodeInto(raw, out)
}

// StreamJSON envía in como JSON y copia el body de respuesta (binario) sin bufferizarlo.
// open se llama una sola vez, solo si la respuesta es 2xx, con el Content-Type recibido;
// así el caller puede fijar sus headers antes del primer byte.
func (c *Client) StreamJSON(ctx context.Context, pathOrURL string, in []byte, open func(contentType string) io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodPost, pathOrURL, map[string]string{
		"Content-Type": "application/json",
	}, bytes.NewReader(in))
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := readAtMost(resp.Body, maxErrorBody)
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	w := open(resp.Header.Get("Content-Type"))
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("httpclient: copy body: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, pathOrURL string, headers map[string]string, body io.Reader) ([]byte, http.Header, error) {
	req, err := c.newRequest(ctx, method, pathOrURL, headers, body)
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	// Leer body (limitado) para errores / decode
	raw, _ := readAtMost(resp.Body, maxErrorBody)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.Header, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
	return raw, resp.Header, nil
}

func (c *Client) newRequest(ctx context.Context, method, pathOrURL string, headers map[string]string, body io.Reader) (*http.Request, error) {
	if c == nil || c.HTTP == nil {
		return nil, errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}
	return req, nil
}

func decodeInto(raw []byte, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	// Si ya es URL absoluta, úsala tal cual.
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	// Si no es absoluta, requiere BaseURL.
	if strings.TrimSpace(c.BaseURL) == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}

	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = maxErrorBody
	}
	lr := io.LimitReader(r, max)
	return io.ReadAll(lr)
}
