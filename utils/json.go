// Package utils holds small shared helpers for config and result dumps.
package utils

import (
	json "github.com/bytedance/sonic"
)

// JsonString renders obj as compact JSON, best effort.
func JsonString(obj any) string {
	jsonStr, _ := json.Marshal(obj)
	return string(jsonStr)
}

// JsonIndent renders obj as indented JSON, best effort.
func JsonIndent(obj any) string {
	jsonStr, _ := json.MarshalIndent(obj, "", "  ")
	return string(jsonStr)
}
