package cli

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cliniclink/cliniclink/internal/common"
	"github.com/cliniclink/cliniclink/internal/netx"
)

// uploadHTTPClient is used for direct-to-storage uploads. Separate from the
// API client because presigned PUTs bypass the backend entirely.
var uploadHTTPClient = http.DefaultClient

// UploadDocument uploads a credential document (license, immunization
// record, background check, ...) in three steps: ask the backend for a
// presigned grant, PUT the file straight to object storage, then confirm
// the upload so the document enters review.
func (a *App) UploadDocument(ctx context.Context, kind, path string) error {
	if !a.isLoggedIn() {
		fmt.Println("Not signed in.")
		return common.ErrorUnauthorized
	}

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("Cannot read file:", err.Error())
		return err
	}

	filename := filepath.Base(path)
	grant, err := a.api.RequestDocumentUpload(ctx, kind, filename)
	if err != nil {
		a.printError(err)
		return err
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if err := netx.UploadPresigned(ctx, uploadHTTPClient, grant.URL, content, contentType); err != nil {
		a.printError(err)
		return err
	}

	if err := a.api.ConfirmDocumentUpload(ctx, grant.Key, kind); err != nil {
		a.printError(err)
		return err
	}

	fmt.Printf("Uploaded %s (%s); it is now pending review.\n", filename, kind)
	return nil
}
