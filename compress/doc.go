// Package compress frames archived reports with optional block compression.
//
// A framed block is an 8-byte little-endian header followed by the payload:
//
//	[UncompressedSize uint32][CompressedSize uint32][Data...]
//
// CompressedSize 0 means the data is stored as-is, which happens whenever
// compression saves less than 10%. KindNone skips framing entirely.
//
// The kind is not recorded in the frame; archive object names carry it as a
// file extension (see Kind.Ext and KindFromName).
package compress
