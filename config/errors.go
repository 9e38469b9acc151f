package config

import (
	"errors"
	"fmt"
)

// ErrAlreadyParsed is returned when parsing the flags of a parser
// a second time
var ErrAlreadyParsed = errors.New("flags have already been parsed")

// ErrParseFlags is returned when the arguments do not match the flags
type ErrParseFlags struct {
	Cause error
}

func (e ErrParseFlags) Error() string {
	return fmt.Sprintf("failed to parse flags: %s", e.Cause.Error())
}

func (e ErrParseFlags) Unwrap() error {
	return e.Cause
}

// ErrReadConfigFile is returned when the configuration file cannot
// be read
type ErrReadConfigFile struct {
	Path  string
	Cause error
}

func (e ErrReadConfigFile) Error() string {
	return fmt.Sprintf("failed to read configuration file %s: %s", e.Path, e.Cause.Error())
}

func (e ErrReadConfigFile) Unwrap() error {
	return e.Cause
}
