package cache

import (
	"fmt"
	"time"
)

// ScoreTTL bounds how long a pair score survives without invalidation
const ScoreTTL = 24 * time.Hour

const keyPrefix = "staffing:score:"

func PairKey(consultantID, tenderID string) string {
	return fmt.Sprintf("%spair:%s:%s", keyPrefix, consultantID, tenderID)
}

func TenderIndexKey(tenderID string) string {
	return fmt.Sprintf("%stender:%s", keyPrefix, tenderID)
}

func ConsultantIndexKey(consultantID string) string {
	return fmt.Sprintf("%sconsultant:%s", keyPrefix, consultantID)
}
