// Package apperr holds the sentinel errors shared across the converter.
package apperr

import "errors"

var (
	// ErrAlreadyExists is returned when an output directory or file predates the run
	// and overwriting was not allowed.
	ErrAlreadyExists = errors.New("already exists")
	ErrNotDirectory  = errors.New("not a directory")
	ErrNotFile       = errors.New("not a file")

	// ErrUnsupportedArchive is returned when the input file is not a zip archive.
	ErrUnsupportedArchive = errors.New("unsupported archive")

	// ErrCollision is recorded when two notes resolve to the same page.
	ErrCollision = errors.New("page collision")
	ErrNotFound  = errors.New("not found")

	// ErrNotModuleExport is returned in module mode when the export does not
	// hold exactly one top-level note.
	ErrNotModuleExport = errors.New("not a module export")

	// ErrInvalidInvocation covers conflicting or incomplete options.
	ErrInvalidInvocation = errors.New("invalid invocation")

	// ErrCompletedWithErrors signals that the run went to the end but recorded
	// non-fatal failures along the way.
	ErrCompletedWithErrors = errors.New("completed with errors")
)
