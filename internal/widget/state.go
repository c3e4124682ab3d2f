// Package widget mounts the payment provider's card-input element into a
// host container, tolerating the provider script and the container
// becoming available asynchronously and out of order.
package widget

// MountState is where the card element is in its mount lifecycle.
type MountState int

const (
	Unmounted MountState = iota
	ScriptLoading
	ScriptReady
	ElementCreated
	Mounted
	Failed
)

var stateNames = map[MountState]string{
	Unmounted:      "unmounted",
	ScriptLoading:  "script_loading",
	ScriptReady:    "script_ready",
	ElementCreated: "element_created",
	Mounted:        "mounted",
	Failed:         "failed",
}

func (s MountState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
