// Package options holds the option interfaces shared by every backend.
package options

// NewFileSystemOption configures a backend FileSystem of type T at construction time.
type NewFileSystemOption[T any] interface {
	Apply(*T)
	NewFileSystemOptionName() string
}

// ApplyOptions applies each non-nil option to fs in order.
func ApplyOptions[T any](fs *T, opts ...NewFileSystemOption[T]) {
	for _, o := range opts {
		if o == nil {
			continue
		}
		o.Apply(fs)
	}
}

// NewFileOption interface contains function that should be implemented by any custom option to qualify as a new file option.
type NewFileOption interface {
	NewFileOptionName() string
}

// NewLocationOption interface contains function that should be implemented by any custom option to qualify as a new
// location option.
type NewLocationOption interface {
	NewLocationOptionName() string
}

// DeleteOption interface contains function that should be implemented by any custom option to qualify as a delete option.
// Example:
// ```
//
//	type TakeBackupDeleteOption{}
//	func (o TakeBackupDeleteOption) DeleteOptionName() string {
//		return "take backup"
//	}
//	func (o TakeBackupDeleteOption) BackupLocation() string {
//		return o.backupLocation
//	}
//
// ```
type DeleteOption interface {
	DeleteOptionName() string
}
