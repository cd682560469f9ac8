package health

import "strings"

// sensitiveKeyFragments is the denylist applied to connection parameter keys.
// A key containing any fragment is masked in displayable snapshots.
var sensitiveKeyFragments = []string{
	"key",
	"secret",
	"token",
	"password",
	"authorization",
	"credential",
}

const maskedValue = "*****"

// RedactParams returns a copy of params safe to log or return to a caller.
// The input map is never modified.
func RedactParams(params map[string]string) map[string]string {
	if params == nil {
		return map[string]string{}
	}

	cleaned := make(map[string]string, len(params))
	for k, v := range params {
		if isSensitiveKey(k) {
			cleaned[k] = maskedValue
			continue
		}
		cleaned[k] = v
	}
	return cleaned
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, fragment := range sensitiveKeyFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
