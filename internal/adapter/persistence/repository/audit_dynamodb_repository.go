package repository

import (
	"context"
	"strconv"
	"time"

	"invoicetracker/internal/domain/entities"
	"invoicetracker/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultAuditTableName = "invoice_audit"

type auditItem struct {
	InvoiceID     int64             `dynamodbav:"invoice_id"`
	ID            int64             `dynamodbav:"id"`
	ActorID       int64             `dynamodbav:"actor_id"`
	ActorUsername string            `dynamodbav:"actor_username"`
	Action        string            `dynamodbav:"action"`
	Timestamp     string            `dynamodbav:"timestamp"`
	OldValues     map[string]string `dynamodbav:"old_values,omitempty"`
	NewValues     map[string]string `dynamodbav:"new_values,omitempty"`
	Description   string            `dynamodbav:"description"`
}

// AuditDynamoRepository is the append-only audit store.
//
// Table requirements:
//   - PK: invoice_id (number)
//   - SK: id (number)
//
// Entry ids are time-ordered, so querying the partition in ascending key
// order returns the trail in recording order. There is no update or delete
// path on purpose.

type AuditDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IAuditRepository = (*AuditDynamoRepository)(nil)

func NewAuditDynamoRepository(ddb *dynamodb.Client) *AuditDynamoRepository {
	return &AuditDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("AUDIT_TABLE", defaultAuditTableName),
	}
}

func (r *AuditDynamoRepository) Append(ctx context.Context, entry entities.AuditEntry) error {
	av, err := attributevalue.MarshalMap(toAuditItem(entry))
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}

func (r *AuditDynamoRepository) ListByInvoiceID(ctx context.Context, invoiceID int64) ([]entities.AuditEntry, error) {
	var entries []entities.AuditEntry
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("#invoice_id = :invoice_id"),
			ExpressionAttributeNames: map[string]string{
				"#invoice_id": "invoice_id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":invoice_id": &types.AttributeValueMemberN{Value: strconv.FormatInt(invoiceID, 10)},
			},
			ScanIndexForward:  aws.Bool(true),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var it auditItem
			if err := attributevalue.UnmarshalMap(item, &it); err != nil {
				return nil, err
			}
			entries = append(entries, fromAuditItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return entries, nil
}

func toAuditItem(e entities.AuditEntry) auditItem {
	return auditItem{
		InvoiceID:     e.InvoiceID,
		ID:            e.ID,
		ActorID:       e.ActorID,
		ActorUsername: e.ActorUsername,
		Action:        string(e.Action),
		Timestamp:     e.Timestamp.UTC().Format(time.RFC3339Nano),
		OldValues:     e.OldValues,
		NewValues:     e.NewValues,
		Description:   e.Description,
	}
}

func fromAuditItem(it auditItem) entities.AuditEntry {
	ts, _ := time.Parse(time.RFC3339Nano, it.Timestamp)
	return entities.AuditEntry{
		InvoiceID:     it.InvoiceID,
		ID:            it.ID,
		ActorID:       it.ActorID,
		ActorUsername: it.ActorUsername,
		Action:        entities.AuditAction(it.Action),
		Timestamp:     ts,
		OldValues:     it.OldValues,
		NewValues:     it.NewValues,
		Description:   it.Description,
	}
}
