// Package gpu selects and opens the HAL device the demos render with.
//
// Backends register themselves with hal on import. Open walks them in a
// configurable preference order, picks the best adapter of the first
// backend that yields one and opens a device on it. FromProvider instead
// adopts the device of a host window that already owns one.
package gpu
