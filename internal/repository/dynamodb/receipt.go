package dynamodb

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/Kabele/invoicely/internal/domain/receipt"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/types"
)

const receiptSKPrefix = "receipt#"

type receiptRepository struct {
	client *Client
	logger *logger.Logger
}

func NewReceiptRepository(client *Client, logger *logger.Logger) receipt.Repository {
	return &receiptRepository{client: client, logger: logger}
}

type receiptItem struct {
	PK            string    `dynamodbav:"pk"`
	SK            string    `dynamodbav:"sk"`
	ID            string    `dynamodbav:"id"`
	ReceiptNumber string    `dynamodbav:"receipt_number"`
	ClientName    string    `dynamodbav:"client_name"`
	Description   string    `dynamodbav:"description"`
	Amount        string    `dynamodbav:"amount"`
	PaymentDate   time.Time `dynamodbav:"payment_date"`
	CreatedAt     time.Time `dynamodbav:"created_at"`
}

func (it *receiptItem) toDomain() (*receipt.Receipt, error) {
	amount, err := decimal.NewFromString(it.Amount)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode receipt amount").
			Mark(ierr.ErrDatabase)
	}

	return &receipt.Receipt{
		ID:            it.ID,
		UserID:        it.PK,
		ReceiptNumber: it.ReceiptNumber,
		ClientName:    it.ClientName,
		Description:   it.Description,
		Amount:        amount,
		PaymentDate:   it.PaymentDate,
		CreatedAt:     it.CreatedAt,
	}, nil
}

func (r *receiptRepository) Create(ctx context.Context, rcpt *receipt.Receipt) error {
	item, err := attributevalue.MarshalMap(&receiptItem{
		PK:            rcpt.UserID,
		SK:            receiptSKPrefix + rcpt.ID,
		ID:            rcpt.ID,
		ReceiptNumber: rcpt.ReceiptNumber,
		ClientName:    rcpt.ClientName,
		Description:   rcpt.Description,
		Amount:        rcpt.Amount.String(),
		PaymentDate:   rcpt.PaymentDate,
		CreatedAt:     rcpt.CreatedAt,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal receipt").
			Mark(ierr.ErrSystem)
	}

	_, err = r.client.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.client.tableName),
		Item:      item,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to store receipt").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *receiptRepository) Get(ctx context.Context, id string) (*receipt.Receipt, error) {
	out, err := r.client.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.client.tableName),
		Key: map[string]ddbtypes.AttributeValue{
			"pk": &ddbtypes.AttributeValueMemberS{Value: types.GetUserID(ctx)},
			"sk": &ddbtypes.AttributeValueMemberS{Value: receiptSKPrefix + id},
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get receipt").
			Mark(ierr.ErrDatabase)
	}
	if out.Item == nil {
		return nil, ierr.NewError("receipt not found").
			WithHintf("receipt %s not found", id).
			Mark(ierr.ErrNotFound)
	}

	var row receiptItem
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal receipt").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain()
}

func (r *receiptRepository) List(ctx context.Context) ([]*receipt.Receipt, error) {
	out, err := r.client.db.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.client.tableName),
		KeyConditionExpression: aws.String("pk = :pk AND begins_with(sk, :prefix)"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":pk":     &ddbtypes.AttributeValueMemberS{Value: types.GetUserID(ctx)},
			":prefix": &ddbtypes.AttributeValueMemberS{Value: receiptSKPrefix},
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list receipts").
			Mark(ierr.ErrDatabase)
	}

	var rows []receiptItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &rows); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal receipts").
			Mark(ierr.ErrDatabase)
	}

	receipts := make([]*receipt.Receipt, 0, len(rows))
	for i := range rows {
		rcpt, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, rcpt)
	}

	sort.Slice(receipts, func(i, j int) bool {
		return receipts[i].PaymentDate.After(receipts[j].PaymentDate)
	})
	return receipts, nil
}
