// Package torch drives the camera-flash LED in continuous (torch) mode.
//
// A Device is one LED class device; the Controller serialises access to it,
// remembers the last state written and reports failures through a Notifier.
package torch

// Device abstracts the platform torch handle.
type Device interface {
	// Name returns the platform identifier of the LED, e.g. "white:flash".
	Name() string

	// FlashAvailable reports whether the device can actually be driven.
	FlashAvailable() bool

	// SetTorch switches the LED on or off with a single blocking call.
	SetTorch(on bool) error
}

// Notifier delivers a short user-visible message.
type Notifier interface {
	Notify(message string)
}
