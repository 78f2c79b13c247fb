// File: internal/model/setting.go
package model

// Settings 是網站設定的 key/value 集合
type Settings map[string]string
