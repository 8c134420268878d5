// Package domain holds the business error taxonomy and the request-scoped
// value objects shared by the list procedures of every entity
package domain

import (
	"errors"
	"fmt"

	"github.com/kindaboxs/meetboxs/domain/model"
)

// Pagination errors, wrapped with the offending bounds when raised
var (
	ErrInvalidPage     = errors.New("page must be 1 or greater")
	ErrInvalidPageSize = errors.New("page size out of range")
)

// PageBounds holds the deployment-configured pagination limits
type PageBounds struct {
	DefaultPage     int
	DefaultPageSize int
	MinPageSize     int
	MaxPageSize     int
}

// DefaultPageBounds returns the bounds used when configuration is silent
func DefaultPageBounds() PageBounds {
	return PageBounds{
		DefaultPage:     1,
		DefaultPageSize: 10,
		MinPageSize:     1,
		MaxPageSize:     100,
	}
}

// PageRequest is a validated (page, pageSize) pair
// Construct it through PageBounds.Resolve so the bounds are always enforced
type PageRequest struct {
	Page     int
	PageSize int
}

// Resolve validates a raw (page, pageSize) pair against the bounds
// Zero values select the configured defaults; out-of-range values are
// rejected with a validation error, never silently clamped
func (b PageBounds) Resolve(page, pageSize int) (PageRequest, error) {
	if page == 0 {
		page = b.DefaultPage
	}
	if pageSize == 0 {
		pageSize = b.DefaultPageSize
	}
	if page < 1 {
		return PageRequest{}, ErrInvalidPage
	}
	if pageSize < b.MinPageSize || pageSize > b.MaxPageSize {
		return PageRequest{}, fmt.Errorf("%w: must be between %d and %d", ErrInvalidPageSize, b.MinPageSize, b.MaxPageSize)
	}
	return PageRequest{Page: page, PageSize: pageSize}, nil
}

// Offset returns the number of rows to skip for this page
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the maximum number of rows to fetch
func (p PageRequest) Limit() int {
	return p.PageSize
}

// TotalPages returns the derived page count for a total row count
// A total of zero yields zero pages
func (p PageRequest) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// AgentFilter narrows an agent list query
// Zero-valued fields are omitted from the predicate entirely
type AgentFilter struct {
	// Search matches the agent name case-insensitively as a substring
	Search string
}

// MeetingFilter narrows a meeting list query
// Zero-valued fields are omitted from the predicate entirely
type MeetingFilter struct {
	// Search matches the meeting name case-insensitively as a substring
	Search string
	// Status matches exactly when set
	Status model.MeetingStatus
	// AgentID matches the referenced agent exactly when set
	AgentID string
}
