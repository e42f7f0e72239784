// Package scroll decides how to scroll a container so a field becomes
// visible.
//
// Compute is the pure geometry: it takes the container viewport, the field's
// content-relative rect and window-relative origin, and returns at most one
// Request. Engine wraps it with the measurement sequence, checking that the
// container and the field are still mounted before every step so a field that
// goes away mid-measurement never causes a scroll. Registry holds the field
// handles a form publishes, keyed by field key.
package scroll
