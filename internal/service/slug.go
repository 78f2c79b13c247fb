// File: internal/service/slug.go
package service

import (
	"strings"

	"github.com/google/uuid"
)

var newUUID = uuid.NewString

// Slugify 轉小寫，非英數字元以單一連字號取代
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// EnsureSlug 優先使用指定 slug，否則由標題產生；都無法產生時使用隨機碼
func EnsureSlug(slug, title string) string {
	if s := Slugify(slug); s != "" {
		return s
	}
	if s := Slugify(title); s != "" {
		return s
	}
	return strings.ReplaceAll(newUUID(), "-", "")[:8]
}

// newCode 回傳去掉連字號的大寫 UUID 前 n 碼
func newCode(n int) string {
	return strings.ToUpper(strings.ReplaceAll(newUUID(), "-", ""))[:n]
}

// NewCertificateNumber 格式為 CERT- 加 12 碼十六進位
func NewCertificateNumber() string {
	return "CERT-" + newCode(12)
}

// NewOrderReference 格式為 ORD- 加完整 UUID
func NewOrderReference() string {
	return "ORD-" + strings.ToUpper(newUUID())
}
