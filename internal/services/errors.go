package services

import (
	"errors"
	"fmt"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUnknownDomain   = errors.New("unknown profile domain")
)

// DataSourceError reports a failed lookup against the data source. Domain and
// Lookup name where it happened.
type DataSourceError struct {
	Domain string
	Lookup string
	Err    error
}

func (err *DataSourceError) Error() string {
	return fmt.Sprintf("%s: load %s: %v", err.Domain, err.Lookup, err.Err)
}

func (err *DataSourceError) Unwrap() error {
	return err.Err
}

func IsDataSourceFailure(err error) bool {
	var target *DataSourceError
	return errors.As(err, &target)
}

func dataSourceError(domain string, lookup string, err error) error {
	return &DataSourceError{Domain: domain, Lookup: lookup, Err: err}
}
