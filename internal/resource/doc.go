// Package resource bounds what a benchmark run may use.
//
// A Controller caps the bytes reserved for context blocks, the number of
// contexts iterating at once, and the rate of calibration progress logs.
//
// Reservations never block. A run whose blocks do not fit fails with
// ErrMemoryLimitExceeded before timing starts:
//
//	rc := resource.NewController(resource.Limits{MemoryBytes: 1 << 20, Workers: 4})
//
//	res, err := rc.Reserve(2000)
//	if err != nil {
//	    return err
//	}
//	defer res.Release()
//
//	release, err := rc.Worker(ctx)
//	if err != nil {
//	    return err
//	}
//	defer release()
//
// A nil *Controller enforces nothing.
package resource
