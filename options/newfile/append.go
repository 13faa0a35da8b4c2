package newfile

import "github.com/c2fo/ftpvfs/options"

const optionNameNewFileAppend = "newFileAppend"

// WithAppend returns Append implementation of NewFileOption
//
// Writes to a file created with this option are appended to the existing remote content instead of replacing it.
func WithAppend() options.NewFileOption {
	return &Append{}
}

// Append represents the NewFileOption that is used to open files for appending.
type Append struct{}

// NewFileOptionName returns the name of Append option
func (a *Append) NewFileOptionName() string {
	return optionNameNewFileAppend
}
