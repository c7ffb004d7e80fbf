package utils

import (
	"fmt"
	"time"
)

const fileStampLayout = "06.01.02_15-04"

// FormatFileStamp renders value in the local time zone as YY.MM.DD_HH-MM_ZONE,
// suitable for use inside a file name.
func FormatFileStamp(value time.Time) string {
	localValue := value.In(time.Local)
	zoneName, _ := localValue.Zone()
	return fmt.Sprintf("%s_%s", localValue.Format(fileStampLayout), zoneName)
}
