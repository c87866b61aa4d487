package utils

// MaskSecret hides all but a short prefix of a secret for display.
func MaskSecret(s string) string {
	if len(s) <= 4 {
		return "*****"
	}
	return s[:4] + "*****"
}
