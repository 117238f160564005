package extract

import "strings"

// decodeText reads bytes as text permissively: invalid UTF-8 sequences are
// substituted with the replacement character rather than failing.
func decodeText(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}
