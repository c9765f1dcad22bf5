// Package pagination provides value objects that normalize the two common
// pagination input styles, page/size and offset/limit, into one canonical
// offset/limit pair for SQL queries.
package pagination

import (
	"github.com/code19m/errx"
)

// CodeInvalidArgument is the error code for rejected pagination inputs. It
// matches the code the crud package uses for caller misuse, so handlers can
// map both with a single errx.IsCodeIn check.
const CodeInvalidArgument = "INVALID_ARGUMENT"

// Pager yields the canonical offset/limit pair of a pagination descriptor.
// Both PageSize and OffsetLimit implement it, so paginating operations
// accept either shape interchangeably.
type Pager interface {
	OffsetLimit() (offset, limit int, err error)
}

// PageSizeToOffsetLimit converts a 1-based page number and a page size into
// an offset/limit pair. Pure function; fails when page or size is below 1.
func PageSizeToOffsetLimit(page, size int) (offset, limit int, err error) {
	if page < 1 {
		return 0, 0, errx.New(
			"Page must be greater than 0",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidArgument),
		)
	}
	if size < 1 {
		return 0, 0, errx.New(
			"Size must be greater than 0",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidArgument),
		)
	}

	return (page - 1) * size, size, nil
}

// PageSize is the page-number/page-size pagination shape.
type PageSize struct {
	Page int `query:"page" json:"page"`
	Size int `query:"size" json:"size"`
}

// OffsetLimit implements Pager by normalizing through PageSizeToOffsetLimit.
func (p PageSize) OffsetLimit() (int, int, error) {
	return PageSizeToOffsetLimit(p.Page, p.Size)
}

// Normalize applies defaults and constraints in place, for use right after
// request binding.
func (p *PageSize) Normalize(opts ...Option) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	if p.Size > o.MaxSize {
		p.Size = o.MaxSize
	}
}

// OffsetLimit is the offset/limit pagination shape. It is used as-is after
// validation: offset must not be negative and limit must be positive.
type OffsetLimit struct {
	Offset int `query:"offset" json:"offset"`
	Limit  int `query:"limit"  json:"limit"`
}

// OffsetLimit implements Pager.
func (p OffsetLimit) OffsetLimit() (int, int, error) {
	if p.Offset < 0 {
		return 0, 0, errx.New(
			"Offset must be greater than or equal to 0",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidArgument),
		)
	}
	if p.Limit < 1 {
		return 0, 0, errx.New(
			"Limit must be greater than 0",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidArgument),
		)
	}

	return p.Offset, p.Limit, nil
}
