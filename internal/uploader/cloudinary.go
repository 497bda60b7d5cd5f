// Package uploader persists product images on Cloudinary under a
// deterministic folder layout and resolves asset ids back out of the public
// URLs it returns.
package uploader

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// Client is the asset-host surface the handlers depend on.
type Client interface {
	Upload(ctx context.Context, file io.Reader, productID, categoryName, subcategoryName string, index int) (string, error)
	UploadMany(ctx context.Context, files []io.Reader, productID, categoryName, subcategoryName string) ([]string, error)
	Delete(ctx context.Context, assetID string) error
}

// uploadAPI is the slice of cloudinary's upload API this package calls.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, destroyParams uploader.DestroyParams) (*uploader.DestroyResult, error)
}

type Cloudinary struct {
	api    uploadAPI
	logger *zap.SugaredLogger
}

func NewCloudinary(cld *cloudinary.Cloudinary, logger *zap.SugaredLogger) *Cloudinary {
	return &Cloudinary{api: &cld.Upload, logger: logger}
}

// cleanupTimeout bounds the compensating deletes after a failed batch. They
// run on their own context because the batch may have failed precisely
// because the request context died.
const cleanupTimeout = 10 * time.Second

var whitespaceRun = regexp.MustCompile(`\s+`)

func sanitizeSegment(s string) string {
	return whitespaceRun.ReplaceAllString(s, "_")
}

// PublicID builds the asset id for one product image:
// Category/Subcategory/productID/productID_img{index}, with whitespace runs
// in the display names collapsed to underscores. The same id is produced for
// re-uploads of the same image slot, so uploads overwrite in place.
func PublicID(productID, categoryName, subcategoryName string, index int) string {
	folder := fmt.Sprintf("%s/%s/%s", sanitizeSegment(categoryName), sanitizeSegment(subcategoryName), productID)
	return fmt.Sprintf("%s/%s_img%d", folder, productID, index)
}

func (c *Cloudinary) Upload(ctx context.Context, file io.Reader, productID, categoryName, subcategoryName string, index int) (string, error) {
	resp, err := c.api.Upload(ctx, file, uploader.UploadParams{
		PublicID:  PublicID(productID, categoryName, subcategoryName, index),
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}

// UploadMany uploads the files concurrently, indexed 1..N by position, and
// returns the secure URLs in input order. The batch is all-or-nothing: on any
// failure the uploads that did succeed are destroyed best-effort and only the
// first error is returned.
func (c *Cloudinary) UploadMany(ctx context.Context, files []io.Reader, productID, categoryName, subcategoryName string) ([]string, error) {
	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file io.Reader) {
			defer wg.Done()
			urls[i], errs[i] = c.Upload(ctx, file, productID, categoryName, subcategoryName, i+1)
		}(i, file)
	}
	wg.Wait()

	var firstErr error
	for _, err := range errs {
		if err != nil {
			firstErr = err
			break
		}
	}
	if firstErr == nil {
		return urls, nil
	}

	// Compensate: remove whatever did make it so a failed batch leaves no
	// orphaned assets behind. A fresh context, not the request's: when the
	// batch failed on cancellation the deletes must still be able to run.
	cleanupCtx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()
	for i, url := range urls {
		if errs[i] != nil || url == "" {
			continue
		}
		assetID := PublicID(productID, categoryName, subcategoryName, i+1)
		if err := c.Delete(cleanupCtx, assetID); err != nil {
			c.logger.Warnw("failed to clean up asset after batch failure", "asset_id", assetID, "error", err)
		}
	}

	return nil, fmt.Errorf("batch upload: %w", firstErr)
}

func (c *Cloudinary) Delete(ctx context.Context, assetID string) error {
	_, err := c.api.Destroy(ctx, uploader.DestroyParams{PublicID: assetID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", assetID, err)
	}
	return nil
}

// ExtractAssetIDFromURL reverses the naming convention from a previously
// returned URL: everything after the "upload" marker and the version segment
// that follows it, minus the file extension. Unrecognized shapes yield an
// empty string rather than an error; callers treat that as "nothing to
// delete".
func ExtractAssetIDFromURL(url string) string {
	parts := strings.Split(url, "/")
	uploadIndex := -1
	for i, part := range parts {
		if part == "upload" {
			uploadIndex = i
			break
		}
	}
	if uploadIndex == -1 || uploadIndex+2 >= len(parts) {
		return ""
	}

	assetID := strings.Join(parts[uploadIndex+2:], "/")
	if dot := strings.LastIndex(assetID, "."); dot > strings.LastIndex(assetID, "/") {
		assetID = assetID[:dot]
	}
	return assetID
}
