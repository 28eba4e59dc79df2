package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Delimiter separates segments inside a tag namespace.
const Delimiter = "|"

// NamespaceDigest returns a short, stable digest of a full namespace string.
// Entry keys embed the digest instead of the namespace itself so key length
// stays bounded regardless of how many tags are active.
func NamespaceDigest(namespace string) string {
	sum := sha256.Sum256([]byte(namespace))
	return hex.EncodeToString(sum[:8]) // 16 hex chars
}

// EntryKey derives the fully-qualified key an entry is stored and indexed
// under: <prefix><digest(namespace)>:<key>.
func EntryKey(prefix, namespace, key string) string {
	return prefix + NamespaceDigest(namespace) + ":" + key
}

// ReferenceKey derives the store key of one reference set:
// <prefix><segment>:<token>.
func ReferenceKey(prefix, segment, token string) string {
	return prefix + segment + ":" + token
}

// Segments splits a namespace into its tag segments.
func Segments(namespace string) []string {
	return strings.Split(namespace, Delimiter)
}
