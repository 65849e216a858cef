package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"invoicetracker/internal/domain/entities"
	"invoicetracker/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultInvoicesTableName = "invoices"

type lineItemItem struct {
	ProductID   int64  `dynamodbav:"product_id"`
	ProductName string `dynamodbav:"product_name"`
	Quantity    string `dynamodbav:"quantity"`
	UnitPrice   string `dynamodbav:"unit_price"`
	Subtotal    string `dynamodbav:"subtotal"`
}

type invoiceItem struct {
	ID               int64          `dynamodbav:"id"`
	OwnerID          int64          `dynamodbav:"owner_id"`
	OwnerUsername    string         `dynamodbav:"owner_username"`
	Date             string         `dynamodbav:"invoice_date"`
	Source           string         `dynamodbav:"source"`
	Vendor           string         `dynamodbav:"vendor"`
	StoredFileName   string         `dynamodbav:"stored_file_name"`
	OriginalFileName string         `dynamodbav:"original_file_name"`
	FileKind         string         `dynamodbav:"file_kind"`
	FileSize         int64          `dynamodbav:"file_size"`
	TotalAmount      string         `dynamodbav:"total_amount"`
	Status           string         `dynamodbav:"status"`
	LineItems        []lineItemItem `dynamodbav:"line_items"`
	Active           bool           `dynamodbav:"active"`
	CreatedAt        string         `dynamodbav:"created_at"`
	UpdatedAt        string         `dynamodbav:"updated_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: id (number)
//
// Decimal amounts travel as strings so no precision is lost in the
// number round trip; soft deletion is the "active" flag, never a
// DeleteItem.

type InvoiceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id int64) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Invoice{}, nil
		}
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) Deactivate(ctx context.Context, id int64) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #active = :active, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active":     &types.AttributeValueMemberBOOL{Value: false},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#active":     "active",
			"#updated_at": "updated_at",
		},
	})
	return err
}

// List scans active invoices, optionally narrowed to an owner and a status.
// The returned cursor is the last evaluated primary key, to be handed back
// verbatim on the next page request.
func (r *InvoiceDynamoRepository) List(ctx context.Context, filter interfaces.InvoiceFilter) ([]entities.Invoice, string, error) {
	expr := "#active = :active"
	names := map[string]string{"#active": "active"}
	values := map[string]types.AttributeValue{
		":active": &types.AttributeValueMemberBOOL{Value: true},
	}
	if filter.OwnerID != 0 {
		expr += " AND #owner_id = :owner_id"
		names["#owner_id"] = "owner_id"
		values[":owner_id"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(filter.OwnerID, 10)}
	}
	if filter.Status != "" {
		expr += " AND #status = :status"
		names["#status"] = "status"
		values[":status"] = &types.AttributeValueMemberS{Value: string(filter.Status)}
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}
	if filter.Limit > 0 {
		input.Limit = aws.Int32(filter.Limit)
	}
	if filter.Cursor != "" {
		input.ExclusiveStartKey = map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: filter.Cursor},
		}
	}

	out, err := r.ddb.Scan(ctx, input)
	if err != nil {
		return nil, "", err
	}

	invoices := make([]entities.Invoice, 0, len(out.Items))
	for _, item := range out.Items {
		var it invoiceItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, "", err
		}
		invoices = append(invoices, fromInvoiceItem(it))
	}

	cursor := ""
	if key, ok := out.LastEvaluatedKey["id"]; ok {
		if n, ok := key.(*types.AttributeValueMemberN); ok {
			cursor = n.Value
		}
	}
	return invoices, cursor, nil
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	items := make([]lineItemItem, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		items = append(items, lineItemItem{
			ProductID:   li.ProductID,
			ProductName: li.ProductName,
			Quantity:    li.Quantity.String(),
			UnitPrice:   li.UnitPrice.String(),
			Subtotal:    li.Subtotal.String(),
		})
	}
	return invoiceItem{
		ID:               inv.ID,
		OwnerID:          inv.OwnerID,
		OwnerUsername:    inv.OwnerUsername,
		Date:             inv.Date.UTC().Format(time.RFC3339Nano),
		Source:           string(inv.Source),
		Vendor:           inv.Vendor,
		StoredFileName:   inv.StoredFileName,
		OriginalFileName: inv.OriginalFileName,
		FileKind:         string(inv.FileKind),
		FileSize:         inv.FileSize,
		TotalAmount:      inv.TotalAmount.String(),
		Status:           string(inv.Status),
		LineItems:        items,
		Active:           inv.Active,
		CreatedAt:        inv.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:        inv.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	date, _ := time.Parse(time.RFC3339Nano, it.Date)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	total := decimalOrZero(it.TotalAmount)

	var items []entities.LineItem
	for _, li := range it.LineItems {
		items = append(items, entities.LineItem{
			ProductID:   li.ProductID,
			ProductName: li.ProductName,
			Quantity:    decimalOrZero(li.Quantity),
			UnitPrice:   decimalOrZero(li.UnitPrice),
			Subtotal:    decimalOrZero(li.Subtotal),
		})
	}

	return entities.Invoice{
		ID:               it.ID,
		OwnerID:          it.OwnerID,
		OwnerUsername:    it.OwnerUsername,
		Date:             date,
		Source:           entities.InvoiceSource(it.Source),
		Vendor:           it.Vendor,
		StoredFileName:   it.StoredFileName,
		OriginalFileName: it.OriginalFileName,
		FileKind:         entities.FileKind(it.FileKind),
		FileSize:         it.FileSize,
		TotalAmount:      total,
		Status:           entities.InvoiceStatus(it.Status),
		LineItems:        items,
		Active:           it.Active,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}

func decimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
