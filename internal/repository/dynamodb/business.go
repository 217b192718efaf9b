package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Kabele/invoicely/internal/domain/business"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/types"
)

// the profile is a singleton per user, so the sort key is constant
const businessSK = "business"

type businessRepository struct {
	client *Client
	logger *logger.Logger
}

func NewBusinessRepository(client *Client, logger *logger.Logger) business.Repository {
	return &businessRepository{client: client, logger: logger}
}

type businessItem struct {
	PK             string    `dynamodbav:"pk"`
	SK             string    `dynamodbav:"sk"`
	BusinessName   string    `dynamodbav:"business_name"`
	Address        string    `dynamodbav:"address"`
	Email          string    `dynamodbav:"email"`
	Website        string    `dynamodbav:"website"`
	Socials        string    `dynamodbav:"socials"`
	AccountName    string    `dynamodbav:"account_name"`
	AccountNumber  string    `dynamodbav:"account_number"`
	PrimaryColor   string    `dynamodbav:"primary_color"`
	AccentColor    string    `dynamodbav:"accent_color"`
	LogoImage      string    `dynamodbav:"logo_image"`
	SignatureImage string    `dynamodbav:"signature_image"`
	CreatedAt      time.Time `dynamodbav:"created_at"`
	UpdatedAt      time.Time `dynamodbav:"updated_at"`
}

func (r *businessRepository) Get(ctx context.Context) (*business.BusinessInfo, error) {
	out, err := r.client.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.client.tableName),
		Key: map[string]ddbtypes.AttributeValue{
			"pk": &ddbtypes.AttributeValueMemberS{Value: types.GetUserID(ctx)},
			"sk": &ddbtypes.AttributeValueMemberS{Value: businessSK},
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get business profile").
			Mark(ierr.ErrDatabase)
	}
	if out.Item == nil {
		return nil, ierr.NewError("business profile not found").
			WithHint("No business profile has been saved yet").
			Mark(ierr.ErrNotFound)
	}

	var row businessItem
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal business profile").
			Mark(ierr.ErrDatabase)
	}

	return &business.BusinessInfo{
		UserID:         row.PK,
		BusinessName:   row.BusinessName,
		Address:        row.Address,
		Email:          row.Email,
		Website:        row.Website,
		Socials:        row.Socials,
		AccountName:    row.AccountName,
		AccountNumber:  row.AccountNumber,
		PrimaryColor:   row.PrimaryColor,
		AccentColor:    row.AccentColor,
		LogoImage:      row.LogoImage,
		SignatureImage: row.SignatureImage,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

func (r *businessRepository) Upsert(ctx context.Context, info *business.BusinessInfo) error {
	item, err := attributevalue.MarshalMap(&businessItem{
		PK:             info.UserID,
		SK:             businessSK,
		BusinessName:   info.BusinessName,
		Address:        info.Address,
		Email:          info.Email,
		Website:        info.Website,
		Socials:        info.Socials,
		AccountName:    info.AccountName,
		AccountNumber:  info.AccountNumber,
		PrimaryColor:   info.PrimaryColor,
		AccentColor:    info.AccentColor,
		LogoImage:      info.LogoImage,
		SignatureImage: info.SignatureImage,
		CreatedAt:      info.CreatedAt,
		UpdatedAt:      info.UpdatedAt,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal business profile").
			Mark(ierr.ErrSystem)
	}

	_, err = r.client.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.client.tableName),
		Item:      item,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save business profile").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
