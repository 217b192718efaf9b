package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Kabele/invoicely/internal/domain/auth"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/types"
)

const authSK = "auth"

type authRepository struct {
	client *Client
	logger *logger.Logger
}

func NewAuthRepository(client *Client, logger *logger.Logger) auth.Repository {
	return &authRepository{client: client, logger: logger}
}

type authItem struct {
	PK        string    `dynamodbav:"pk"`
	SK        string    `dynamodbav:"sk"`
	Provider  string    `dynamodbav:"provider"`
	Token     string    `dynamodbav:"token"`
	CreatedAt time.Time `dynamodbav:"created_at"`
	UpdatedAt time.Time `dynamodbav:"updated_at"`
}

func (r *authRepository) put(ctx context.Context, a *auth.Auth) error {
	item, err := attributevalue.MarshalMap(&authItem{
		PK:        a.UserID,
		SK:        authSK,
		Provider:  string(a.Provider),
		Token:     a.Token,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal credentials").
			Mark(ierr.ErrSystem)
	}

	_, err = r.client.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.client.tableName),
		Item:      item,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to store credentials").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *authRepository) CreateAuth(ctx context.Context, a *auth.Auth) error {
	return r.put(ctx, a)
}

func (r *authRepository) GetAuthByUserID(ctx context.Context, userID string) (*auth.Auth, error) {
	out, err := r.client.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.client.tableName),
		Key: map[string]ddbtypes.AttributeValue{
			"pk": &ddbtypes.AttributeValueMemberS{Value: userID},
			"sk": &ddbtypes.AttributeValueMemberS{Value: authSK},
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get credentials").
			Mark(ierr.ErrDatabase)
	}
	if out.Item == nil {
		return nil, ierr.NewError("credentials not found").
			WithHintf("no credentials found for user %s", userID).
			Mark(ierr.ErrNotFound)
	}

	var row authItem
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal credentials").
			Mark(ierr.ErrDatabase)
	}

	return &auth.Auth{
		UserID:    row.PK,
		Provider:  types.AuthProvider(row.Provider),
		Token:     row.Token,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *authRepository) UpdateAuth(ctx context.Context, a *auth.Auth) error {
	return r.put(ctx, a)
}

func (r *authRepository) DeleteAuth(ctx context.Context, userID string) error {
	_, err := r.client.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.client.tableName),
		Key: map[string]ddbtypes.AttributeValue{
			"pk": &ddbtypes.AttributeValueMemberS{Value: userID},
			"sk": &ddbtypes.AttributeValueMemberS{Value: authSK},
		},
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete credentials").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
