package limit

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// CFSPeriod is the scheduler window written alongside every quota (in us)
	CFSPeriod uint64 = 100000

	// MinCPUShare is the exclusive lower bound accepted from the command line
	MinCPUShare = 0.01

	// minCFSQuota is the smallest quota the kernel accepts (in us)
	minCFSQuota = 1000
)

// ErrInvalidShare is returned for CPU shares that cannot be expressed as a quota
var ErrInvalidShare = errors.New("invalid cpu share")

// CFSQuota converts a fractional number of CPUs into a CFS quota for CFSPeriod
func CFSQuota(share float64) (uint64, error) {
	if math.IsNaN(share) || math.IsInf(share, 0) || share <= 0 {
		return 0, errors.Wrapf(ErrInvalidShare, "%v", share)
	}
	q := math.Round(share * float64(CFSPeriod))
	if q < minCFSQuota || q >= math.MaxInt64 {
		return 0, errors.Wrapf(ErrInvalidShare, "%v: quota %.0fus out of range", share, q)
	}
	return uint64(q), nil
}

// ValidateCPUShare applies the command line bound on top of CFSQuota
func ValidateCPUShare(share float64) error {
	if !(share > MinCPUShare) {
		return errors.Wrap(ErrInvalidShare, "must be greater than 0.01")
	}
	_, err := CFSQuota(share)
	return err
}
