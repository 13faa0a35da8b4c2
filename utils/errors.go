package utils

import "fmt"

// wrap prefixes err with op. A nil err stays nil.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s error: %w", op, err)
}

// WrapReadError returns a wrapped read error
func WrapReadError(err error) error {
	return wrap("read", err)
}

// WrapSeekError returns a wrapped seek error
func WrapSeekError(err error) error {
	return wrap("seek", err)
}

// WrapWriteError returns a wrapped write error
func WrapWriteError(err error) error {
	return wrap("write", err)
}

// WrapCloseError returns a wrapped close error
func WrapCloseError(err error) error {
	return wrap("close", err)
}

// WrapTouchError returns a wrapped touch error
func WrapTouchError(err error) error {
	return wrap("touch", err)
}

// WrapExistsError returns a wrapped exists error
func WrapExistsError(err error) error {
	return wrap("exists", err)
}

// WrapSizeError returns a wrapped size error
func WrapSizeError(err error) error {
	return wrap("size", err)
}

// WrapLastModifiedError returns a wrapped lastModified error
func WrapLastModifiedError(err error) error {
	return wrap("lastModified", err)
}

// WrapDeleteError returns a wrapped delete error
func WrapDeleteError(err error) error {
	return wrap("delete", err)
}

// WrapCopyToLocationError returns a wrapped copyToLocation error
func WrapCopyToLocationError(err error) error {
	return wrap("copyToLocation", err)
}

// WrapCopyToFileError returns a wrapped copyToFile error
func WrapCopyToFileError(err error) error {
	return wrap("copyToFile", err)
}

// WrapMoveToLocationError returns a wrapped moveToLocation error
func WrapMoveToLocationError(err error) error {
	return wrap("moveToLocation", err)
}

// WrapMoveToFileError returns a wrapped moveToFile error
func WrapMoveToFileError(err error) error {
	return wrap("moveToFile", err)
}

// WrapListError returns a wrapped list error
func WrapListError(err error) error {
	return wrap("list", err)
}

// WrapListByPrefixError returns a wrapped list by prefix error
func WrapListByPrefixError(err error) error {
	return wrap("list by prefix", err)
}

// WrapListByRegexError returns a wrapped list by regex error
func WrapListByRegexError(err error) error {
	return wrap("list by regex", err)
}
