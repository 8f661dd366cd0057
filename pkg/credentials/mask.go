package credentials

// maskShowChars is how many leading characters of a token remain
// visible when displayed.
const maskShowChars = 6

// MaskToken renders a token for display, keeping only its first few
// characters. Tokens too short to partially reveal are fully masked.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= maskShowChars {
		return "***"
	}
	return token[:maskShowChars] + "***"
}
