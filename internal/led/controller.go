package led

// Pattern is what a status LED shows.
type Pattern string

const (
	PatternOff   Pattern = "off"
	PatternSolid Pattern = "solid"
	PatternBlink Pattern = "blink"
)

// Controller drives a single board status LED.
type Controller interface {
	// Name returns the LED class device name, or "none".
	Name() string
	// Set switches the LED to pattern.
	Set(pattern Pattern) error
}
