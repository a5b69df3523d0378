package respond

import (
	"regexp"
)

var (
	// 順序重要: より具体的なパターンから適用する
	anthropicKeyPattern = regexp.MustCompile(`\bsk-ant-[a-zA-Z0-9_-]+`)
	openaiKeyPattern    = regexp.MustCompile(`\bsk-(?:proj-)?[a-zA-Z0-9_-]{10,}`)
	bearerPattern       = regexp.MustCompile(`(?i)(bearer\s+)[^\s"']+`)
	apiKeyParamPattern  = regexp.MustCompile(`(?i)(api[_-]?key[=:]\s*)[^\s&"']+`)

	// DSN 内のパスワード
	userinfoPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
)

// Sanitize masks API keys, bearer tokens and URL passwords in msg.
func Sanitize(msg string) string {
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	msg = apiKeyParamPattern.ReplaceAllString(msg, "${1}****")
	msg = userinfoPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}

// SanitizeError returns err's message with secrets masked, or "" for nil.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return Sanitize(err.Error())
}
