package stream

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

func TestNewJanitor(t *testing.T) {
	j := NewJanitor(nil, nil)
	if j == nil {
		t.Fatal("expected non-nil Janitor")
	}
}

// Records that should be skipped never touch the store, so a nil store is
// safe here.
func TestProcessRecordSkips(t *testing.T) {
	j := NewJanitor(nil, nil)

	tests := []struct {
		name   string
		record events.DynamoDBEventRecord
	}{
		{
			"insert event",
			events.DynamoDBEventRecord{EventName: "INSERT"},
		},
		{
			"remove event",
			events.DynamoDBEventRecord{EventName: "REMOVE"},
		},
		{
			"modify without ttl",
			events.DynamoDBEventRecord{
				EventName: "MODIFY",
				Change: events.DynamoDBStreamRecord{
					OldImage: map[string]events.DynamoDBAttributeValue{
						"id": events.NewStringAttribute("f1"),
					},
					NewImage: map[string]events.DynamoDBAttributeValue{
						"id": events.NewStringAttribute("f1"),
					},
				},
			},
		},
		{
			"modify with preexisting ttl",
			events.DynamoDBEventRecord{
				EventName: "MODIFY",
				Change: events.DynamoDBStreamRecord{
					OldImage: map[string]events.DynamoDBAttributeValue{
						"ttl": events.NewNumberAttribute("1700000000"),
					},
					NewImage: map[string]events.DynamoDBAttributeValue{
						"ttl": events.NewNumberAttribute("1700000000"),
					},
				},
			},
		},
		{
			"soft delete without constraints",
			events.DynamoDBEventRecord{
				EventName: "MODIFY",
				Change: events.DynamoDBStreamRecord{
					OldImage: map[string]events.DynamoDBAttributeValue{
						"id": events.NewStringAttribute("t1"),
					},
					NewImage: map[string]events.DynamoDBAttributeValue{
						"id":  events.NewStringAttribute("t1"),
						"ttl": events.NewNumberAttribute("1700000000"),
					},
				},
			},
		},
	}

	for _, tt := range tests {
		if err := j.processRecord(context.Background(), tt.record); err != nil {
			t.Errorf("%s: expected record to be skipped, got %v", tt.name, err)
		}
	}
}

func TestGetNumberAttr(t *testing.T) {
	image := map[string]events.DynamoDBAttributeValue{
		"ttl":  events.NewNumberAttribute("1700000123"),
		"name": events.NewStringAttribute("Work"),
	}

	if got := getNumberAttr(image, "ttl"); got != 1700000123 {
		t.Errorf("expected 1700000123, got %d", got)
	}
	if got := getNumberAttr(image, "name"); got != 0 {
		t.Errorf("expected 0 for a string attribute, got %d", got)
	}
	if got := getNumberAttr(image, "missing"); got != 0 {
		t.Errorf("expected 0 for a missing attribute, got %d", got)
	}
}

func TestGetStringListAttr(t *testing.T) {
	image := map[string]events.DynamoDBAttributeValue{
		"_unique_pks": events.NewListAttribute([]events.DynamoDBAttributeValue{
			events.NewStringAttribute("pk1"),
			events.NewStringAttribute("pk2"),
		}),
	}

	got := getStringListAttr(image, "_unique_pks")
	if len(got) != 2 || got[0] != "pk1" || got[1] != "pk2" {
		t.Errorf("expected [pk1 pk2], got %v", got)
	}

	if got := getStringListAttr(image, "missing"); got != nil {
		t.Errorf("expected nil for a missing attribute, got %v", got)
	}
}
