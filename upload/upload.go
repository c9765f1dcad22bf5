// Package upload validates multipart file uploads against size and
// content-type constraints before they are stored or processed.
package upload

import (
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/crudkit/pkg/size"
)

const (
	// CodeFileTooLarge is returned when the uploaded file exceeds the size limit.
	CodeFileTooLarge = "FILE_TOO_LARGE"

	// CodeUnsupportedContentType is returned when the file's content type is not allowed.
	CodeUnsupportedContentType = "UNSUPPORTED_CONTENT_TYPE"
)

// Validator checks uploaded files against a maximum size and a set of
// allowed MIME types. A zero max size disables the size check; an empty
// allowed set disables the content-type check.
//
// Validator is immutable and safe for concurrent use; construct one per
// upload policy and reuse it across requests.
type Validator struct {
	maxSizeBytes int64
	allowedTypes []string
}

// NewValidator creates a Validator with the given size limit in bytes and
// allowed MIME types.
func NewValidator(maxSizeBytes int64, allowedTypes ...string) *Validator {
	return &Validator{
		maxSizeBytes: maxSizeBytes,
		allowedTypes: lo.Map(allowedTypes, func(t string, _ int) string {
			return normalizeType(t)
		}),
	}
}

// Validate checks a single multipart file header against the validator's
// constraints. It returns a validation error with code FILE_TOO_LARGE or
// UNSUPPORTED_CONTENT_TYPE on failure, nil otherwise.
func (v *Validator) Validate(file *multipart.FileHeader) error {
	if file == nil {
		return errx.New(
			"no file provided",
			errx.WithCode(CodeUnsupportedContentType),
			errx.WithType(errx.T_Validation),
		)
	}

	if v.maxSizeBytes > 0 && file.Size > v.maxSizeBytes {
		return errx.New(
			fmt.Sprintf("File size must be at most %.2f MB", size.BytesToMB(int(v.maxSizeBytes))),
			errx.WithCode(CodeFileTooLarge),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{
				"file_name":      file.Filename,
				"file_size":      file.Size,
				"max_size_bytes": v.maxSizeBytes,
			}),
		)
	}

	if len(v.allowedTypes) == 0 {
		return nil
	}

	contentType := detectContentType(file)
	if !lo.Contains(v.allowedTypes, contentType) {
		return errx.New(
			fmt.Sprintf("Content type %q is not allowed", contentType),
			errx.WithCode(CodeUnsupportedContentType),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{
				"file_name":     file.Filename,
				"content_type":  contentType,
				"allowed_types": strings.Join(v.allowedTypes, ", "),
			}),
		)
	}

	return nil
}

// FormFile fetches the named file from a Fiber multipart request and
// validates it. The returned header is safe to store or open on success.
func (v *Validator) FormFile(c *fiber.Ctx, name string) (*multipart.FileHeader, error) {
	file, err := c.FormFile(name)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithType(errx.T_Validation))
	}

	if err := v.Validate(file); err != nil {
		return nil, err
	}

	return file, nil
}

// detectContentType reads the content type from the part headers, falling
// back to the filename extension when the headers carry none.
func detectContentType(file *multipart.FileHeader) string {
	if ct := file.Header.Get(fiber.HeaderContentType); ct != "" {
		return normalizeType(ct)
	}

	return normalizeType(mime.TypeByExtension(filepath.Ext(file.Filename)))
}

// normalizeType strips any media-type parameters (e.g. "; charset=utf-8")
// and lowercases the result.
func normalizeType(contentType string) string {
	base := strings.SplitN(contentType, ";", 2)[0]
	return strings.ToLower(strings.TrimSpace(base))
}
