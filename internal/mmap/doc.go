// Package mmap maps memory outside the Go heap.
//
// Anonymous regions back benchmark data blocks for the mmap memory method.
// They are prefaulted, and pinned where the process may lock memory, so
// first-touch page faults land before the timed loop. File regions give the
// local blob store a read-only view of archived reports.
//
//	r, err := mmap.MapAnon(2000)
//	if err != nil { ... }
//	defer r.Close()
//	_ = r.Prefault()
//	block := r.Bytes()
//
// Unix uses mmap(2), madvise(2) and mlock(2). Windows uses VirtualAlloc,
// VirtualLock and MapViewOfFile; access hints are ignored there.
//
// Callers must not touch Bytes() after Close.
package mmap
