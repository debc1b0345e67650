package types

import "errors"

var (
	ErrSectionNotTabular = errors.New("report section is not a record sequence")
	ErrSectionNotFound   = errors.New("report section not found")
	ErrUnknownField      = errors.New("unknown field")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrDuplicateSection  = errors.New("duplicate report section")
	ErrNoDataSource      = errors.New("no data source configured. Use --data-dir or --sqlite")
	ErrUnsupportedFormat = errors.New("unsupported report type")
)
