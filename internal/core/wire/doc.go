// Package wire implements the length-prefixed binary field codec used for
// game packets. Integers are little-endian; strings and byte slices carry a
// uint16 length prefix, which caps a single field at 64 KiB.
package wire
