package contextmenu

import (
	"errors"
	"fmt"
)

// Error kinds reported to callers across process boundaries.
const (
	KindDeserialization = "deserialization"
	KindPlatform        = "platform"
)

var (
	// ErrPlatformUnavailable indicates the native menu subsystem is not
	// compiled into this binary or cannot be reached at all.
	ErrPlatformUnavailable = errors.New("native menu subsystem unavailable")

	// ErrEmptyMenu is returned when empty menus are configured to be rejected.
	ErrEmptyMenu = errors.New("menu has no items")
)

// DeserializationError reports a payload that does not match the
// ContextMenuOptions shape.
type DeserializationError struct {
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserialize context menu options: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// PlatformError reports a failure of the native menu subsystem.
type PlatformError struct {
	Backend string
	Err     error
}

func (e *PlatformError) Error() string {
	if e.Backend == "" {
		return fmt.Sprintf("show context menu: %v", e.Err)
	}
	return fmt.Sprintf("show context menu via %s: %v", e.Backend, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// Kind classifies err as one of the Kind constants. It returns an empty
// string for nil and for errors outside the taxonomy.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var derr *DeserializationError
	if errors.As(err, &derr) {
		return KindDeserialization
	}
	var perr *PlatformError
	if errors.As(err, &perr) {
		return KindPlatform
	}
	return ""
}
