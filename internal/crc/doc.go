// Package crc provides the 16-bit checksum used to fold every observable
// benchmark value.
//
// The fold is order dependent and not commutative. It processes one byte at a
// time with a CCITT-style feedback (0x4002) and a carry-dependent shift, and
// must stay bit exact: validation compares results against fixed published
// constants.
package crc
