package commands

import (
	"math"
	"time"

	"fieldservice/internal/pkg/errs"
)

func positiveID(paramName string, id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError(paramName, id, 1, int64(math.MaxInt64))
	}
	return nil
}

func requiredVersion(paramName string, version time.Time) error {
	if version.IsZero() {
		return errs.NewVersionIsInvalidError(paramName)
	}
	return nil
}
