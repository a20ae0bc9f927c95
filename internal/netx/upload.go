// Package netx holds small HTTP helpers shared by client components.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/cliniclink/cliniclink/internal/common"
)

// UploadPresigned PUTs content directly to a presigned object-storage URL.
// The request carries no bearer token: the signature embedded in the URL is
// the authorization. A transport-level failure maps to common.ErrUnavailable.
func UploadPresigned(ctx context.Context, client *http.Client, url string, content []byte, contentType string) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(content))
	if err != nil {
		return err
	}
	req.ContentLength = int64(len(content))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := client.Do(req)
	if err != nil {
		return common.ErrUnavailable
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upload rejected (%d)", resp.StatusCode)
	}
	return nil
}
