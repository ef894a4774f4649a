package store

import (
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestIsDeleted(t *testing.T) {
	past := strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)
	future := strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10)

	tests := []struct {
		name     string
		item     map[string]types.AttributeValue
		expected bool
	}{
		{
			"no ttl",
			map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "x"}},
			false,
		},
		{
			"expired ttl",
			map[string]types.AttributeValue{"ttl": &types.AttributeValueMemberN{Value: past}},
			true,
		},
		{
			"future ttl",
			map[string]types.AttributeValue{"ttl": &types.AttributeValueMemberN{Value: future}},
			false,
		},
		{
			"malformed ttl",
			map[string]types.AttributeValue{"ttl": &types.AttributeValueMemberS{Value: "soon"}},
			false,
		},
	}

	for _, tt := range tests {
		if got := IsDeleted(tt.item); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, got)
		}
	}
}

func TestTTLFilterPieces(t *testing.T) {
	if TTLFilterExpr() != "attribute_not_exists(#ttl) OR #ttl > :now" {
		t.Errorf("unexpected filter expression %q", TTLFilterExpr())
	}
	if TTLFilterNames()["#ttl"] != "ttl" {
		t.Errorf("unexpected filter names %v", TTLFilterNames())
	}
	if _, ok := TTLFilterValues()[":now"]; !ok {
		t.Error("expected :now in filter values")
	}
}
