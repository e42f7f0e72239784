// Package focus lets deeply nested fields reach the scroll function of their
// nearest scroll container without threading it through every parent. A
// container provides a function on a Scope; fields hold a Watcher that asks
// for the current binding only when they become the first invalid field.
package focus
