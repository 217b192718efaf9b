package dynamodb

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/Kabele/invoicely/internal/domain/invoice"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/types"
)

const invoiceSKPrefix = "invoice#"

type invoiceRepository struct {
	client *Client
	logger *logger.Logger
}

func NewInvoiceRepository(client *Client, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{client: client, logger: logger}
}

type invoiceItem struct {
	PK                 string    `dynamodbav:"pk"` // user ID
	SK                 string    `dynamodbav:"sk"` // invoice#<id>
	ID                 string    `dynamodbav:"id"`
	ClientName         string    `dynamodbav:"client_name"`
	ProjectDescription string    `dynamodbav:"project_description"`
	DueDate            time.Time `dynamodbav:"due_date"`
	LineItems          string    `dynamodbav:"line_items"`
	IsPaid             bool      `dynamodbav:"is_paid"`
	Category           string    `dynamodbav:"category"`
	TaxRate            string    `dynamodbav:"tax_rate"`
	Notes              string    `dynamodbav:"notes"`
	Status             string    `dynamodbav:"status"`
	Total              string    `dynamodbav:"total"`
	CreatedAt          time.Time `dynamodbav:"created_at"`
	UpdatedAt          time.Time `dynamodbav:"updated_at"`
}

func toInvoiceItem(inv *invoice.Invoice) (*invoiceItem, error) {
	items, err := json.Marshal(inv.LineItems)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to encode invoice line items").
			Mark(ierr.ErrSystem)
	}

	return &invoiceItem{
		PK:                 inv.UserID,
		SK:                 invoiceSKPrefix + inv.ID,
		ID:                 inv.ID,
		ClientName:         inv.ClientName,
		ProjectDescription: inv.ProjectDescription,
		DueDate:            inv.DueDate,
		LineItems:          string(items),
		IsPaid:             inv.IsPaid,
		Category:           inv.Category.String(),
		TaxRate:            inv.TaxRate.String(),
		Notes:              inv.Notes,
		Status:             inv.Status.String(),
		Total:              inv.Total.String(),
		CreatedAt:          inv.CreatedAt,
		UpdatedAt:          inv.UpdatedAt,
	}, nil
}

func (it *invoiceItem) toDomain() (*invoice.Invoice, error) {
	var lineItems []invoice.LineItem
	if err := json.Unmarshal([]byte(it.LineItems), &lineItems); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode invoice line items").
			Mark(ierr.ErrDatabase)
	}

	taxRate, err := decimal.NewFromString(it.TaxRate)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode invoice tax rate").
			Mark(ierr.ErrDatabase)
	}

	total, err := decimal.NewFromString(it.Total)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode invoice total").
			Mark(ierr.ErrDatabase)
	}

	return &invoice.Invoice{
		ID:                 it.ID,
		UserID:             it.PK,
		ClientName:         it.ClientName,
		ProjectDescription: it.ProjectDescription,
		DueDate:            it.DueDate,
		LineItems:          lineItems,
		IsPaid:             it.IsPaid,
		Category:           types.InvoiceCategory(it.Category),
		TaxRate:            taxRate,
		Notes:              it.Notes,
		Status:             types.InvoiceStatus(it.Status),
		Total:              total,
		CreatedAt:          it.CreatedAt,
		UpdatedAt:          it.UpdatedAt,
	}, nil
}

func (r *invoiceRepository) put(ctx context.Context, inv *invoice.Invoice) error {
	row, err := toInvoiceItem(inv)
	if err != nil {
		return err
	}

	item, err := attributevalue.MarshalMap(row)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal invoice").
			Mark(ierr.ErrSystem)
	}

	_, err = r.client.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.client.tableName),
		Item:      item,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to store invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	return r.put(ctx, inv)
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	out, err := r.client.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.client.tableName),
		Key: map[string]ddbtypes.AttributeValue{
			"pk": &ddbtypes.AttributeValueMemberS{Value: types.GetUserID(ctx)},
			"sk": &ddbtypes.AttributeValueMemberS{Value: invoiceSKPrefix + id},
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}
	if out.Item == nil {
		return nil, ierr.NewError("invoice not found").
			WithHintf("invoice %s not found", id).
			Mark(ierr.ErrNotFound)
	}

	var row invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal invoice").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain()
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	// PutItem overwrites; existence is checked by the service before updating
	return r.put(ctx, inv)
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.client.tableName),
		Key: map[string]ddbtypes.AttributeValue{
			"pk": &ddbtypes.AttributeValueMemberS{Value: types.GetUserID(ctx)},
			"sk": &ddbtypes.AttributeValueMemberS{Value: invoiceSKPrefix + id},
		},
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]*invoice.Invoice, error) {
	out, err := r.client.db.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.client.tableName),
		KeyConditionExpression: aws.String("pk = :pk AND begins_with(sk, :prefix)"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":pk":     &ddbtypes.AttributeValueMemberS{Value: types.GetUserID(ctx)},
			":prefix": &ddbtypes.AttributeValueMemberS{Value: invoiceSKPrefix},
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}

	var rows []invoiceItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &rows); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal invoices").
			Mark(ierr.ErrDatabase)
	}

	invoices := make([]*invoice.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}

	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].DueDate.After(invoices[j].DueDate)
	})
	return invoices, nil
}
