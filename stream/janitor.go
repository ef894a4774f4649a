// Package stream provides the DynamoDB Streams handler that reclaims unique
// constraint records after a soft delete.
//
// Deletes in this service set a ttl attribute on the record; reads filter
// expired records out immediately, and the hierarchy engine removes children
// synchronously. What can lag is the unique-constraints table: the name a
// deleted folder held stays reserved until its constraint record expires.
// This handler watches the entity tables' streams and propagates the ttl to
// the constraint records the deleted entity pinned.
package stream

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/lattice/store"
)

// Janitor processes DynamoDB stream events for constraint reclamation.
type Janitor struct {
	store  *store.Store
	logger *slog.Logger
}

// NewJanitor creates a stream janitor.
func NewJanitor(s *store.Store, logger *slog.Logger) *Janitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Janitor{
		store:  s,
		logger: logger,
	}
}

// HandleSoftDelete processes DynamoDB stream events to propagate TTL to the
// deleted record's unique-constraint records. Designed to be used as an AWS
// Lambda handler.
func (j *Janitor) HandleSoftDelete(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := j.processRecord(ctx, record); err != nil {
			j.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
	}
	return nil
}

// processRecord processes a single DynamoDB stream record.
func (j *Janitor) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	// Only process MODIFY events where TTL was added
	if record.EventName != "MODIFY" {
		return nil
	}

	oldTTL := getNumberAttr(record.Change.OldImage, "ttl")
	newTTL := getNumberAttr(record.Change.NewImage, "ttl")

	// Only process when TTL is newly set (was absent/0, now present)
	if oldTTL != 0 || newTTL == 0 {
		return nil
	}

	entityRef := getStringAttr(record.Change.NewImage, "entity_ref")
	uniquePKs := getStringListAttr(record.Change.NewImage, "_unique_pks")
	if len(uniquePKs) == 0 {
		return nil
	}

	j.logger.Info("reclaiming unique constraints",
		"entityRef", entityRef,
		"constraints", len(uniquePKs),
		"ttl", newTTL,
	)

	for _, constraintPK := range uniquePKs {
		if err := j.store.SetUniqueConstraintTTL(ctx, constraintPK, newTTL); err != nil {
			j.logger.Warn("failed to set unique constraint TTL",
				"pk", constraintPK,
				"error", err,
			)
			// Continue - idempotent, will retry
		}
	}

	return nil
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok {
		return v.String()
	}
	return ""
}

// getNumberAttr extracts a number attribute from a DynamoDB stream image.
func getNumberAttr(image map[string]events.DynamoDBAttributeValue, key string) int64 {
	if v, ok := image[key]; ok {
		if v.DataType() == events.DataTypeNumber {
			n, _ := strconv.ParseInt(v.Number(), 10, 64)
			return n
		}
	}
	return 0
}

// getStringListAttr extracts a string list attribute from a DynamoDB stream image.
func getStringListAttr(image map[string]events.DynamoDBAttributeValue, key string) []string {
	if v, ok := image[key]; ok {
		if v.DataType() == events.DataTypeList {
			var result []string
			for _, item := range v.List() {
				if item.DataType() == events.DataTypeString {
					result = append(result, item.String())
				}
			}
			return result
		}
	}
	return nil
}
