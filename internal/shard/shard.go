// Package shard provides partition key generation for DynamoDB constraint tables.
package shard

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ConstraintPK computes a hash-distributed partition key for a unique constraint.
// Hashing spreads constraints across partitions, eliminating hot partition risk
// when many records share a scope.
func ConstraintPK(scope, entityType, field, value string) string {
	data := fmt.Sprintf("%s#%s#%s#%s", scope, entityType, field, value)
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:16]) // 128-bit hash as hex
}
