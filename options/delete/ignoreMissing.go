package delete

import "github.com/c2fo/ftpvfs/options"

const optionNameIgnoreMissing = "ignoreMissing"

// WithIgnoreMissing returns IgnoreMissing implementation of DeleteOption
func WithIgnoreMissing() options.DeleteOption {
	return IgnoreMissing{}
}

// IgnoreMissing represents the DeleteOption that makes deleting a file that is already gone succeed instead of
// returning a not-exist error.
type IgnoreMissing struct{}

// DeleteOptionName returns the name of IgnoreMissing option
func (w IgnoreMissing) DeleteOptionName() string {
	return optionNameIgnoreMissing
}

// HasIgnoreMissing reports whether opts contains an IgnoreMissing option.
func HasIgnoreMissing(opts []options.DeleteOption) bool {
	for _, o := range opts {
		if _, ok := o.(IgnoreMissing); ok {
			return true
		}
	}
	return false
}
