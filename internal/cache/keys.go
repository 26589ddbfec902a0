package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const CitiesKey = "posts:cities"

// ListKey is a deterministic key for one listing view and page.
func ListKey(selectionKey string, page int) string {
	hash := sha256.Sum256([]byte(strings.ToLower(selectionKey)))
	return fmt.Sprintf("posts:list:%s:%d", hex.EncodeToString(hash[:]), page)
}
