package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNoGPU is returned when no GPU adapter is available.
	ErrNoGPU = errors.New("native: no GPU adapter available")

	// ErrNilDevice is returned when a nil device or queue is supplied.
	ErrNilDevice = errors.New("native: device or queue is nil")

	// ErrNoHAL is returned when a device provider does not expose HAL types.
	ErrNoHAL = errors.New("native: provider does not expose HAL device")

	// ErrClosed is returned by operations on a closed backend.
	ErrClosed = errors.New("native: backend closed")

	// ErrPassActive is returned by BeginPass while a pass is open.
	ErrPassActive = errors.New("native: render pass already active")

	// ErrNoPass is returned by EndPass without an open pass.
	ErrNoPass = errors.New("native: no active render pass")

	// ErrUnknownHandle is returned for handles the backend did not create.
	ErrUnknownHandle = errors.New("native: unknown handle")

	// ErrOutOfRange is returned when an upload exceeds the buffer size.
	ErrOutOfRange = errors.New("native: write out of buffer range")

	// ErrInvalidImage is returned for empty or nil images.
	ErrInvalidImage = errors.New("native: invalid image")
)
