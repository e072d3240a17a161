package hid

// Device is one connected physical input device. Implementations must
// be safe to poll from the frame loop while the backend updates axis
// values from its own goroutine.
type Device interface {
	// Name identifies the device for logs and UIs.
	Name() string
	// Class reports the device class used for binding scoping.
	Class() Class
	// Axes lists the axis names this device exposes, e.g. "left_x".
	Axes() []string
	// AxisValue returns the current value of the named axis in [-1, 1].
	// Unknown axes read as 0.
	AxisValue(axis string) float64
}
