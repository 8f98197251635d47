package interfaces

import "errors"

// ErrConditionFailed is returned by repositories when a guarded write lost its
// compare-and-swap: the stored state no longer matches what the caller observed.
// Nothing from the failed write set has been applied.
var ErrConditionFailed = errors.New("conditional write failed")
