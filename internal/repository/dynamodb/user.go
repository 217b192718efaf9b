package dynamodb

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Kabele/invoicely/internal/domain/user"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/logger"
)

const (
	userSK        = "user"
	emailLookupPK = "email#"
)

type userRepository struct {
	client *Client
	logger *logger.Logger
}

func NewUserRepository(client *Client, logger *logger.Logger) user.Repository {
	return &userRepository{client: client, logger: logger}
}

type userItem struct {
	PK        string    `dynamodbav:"pk"`
	SK        string    `dynamodbav:"sk"`
	ID        string    `dynamodbav:"id"`
	Email     string    `dynamodbav:"email"`
	CreatedAt time.Time `dynamodbav:"created_at"`
	UpdatedAt time.Time `dynamodbav:"updated_at"`
}

func (it *userItem) toDomain() *user.User {
	return &user.User{
		ID:        it.ID,
		Email:     it.Email,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

// Create stores the user twice, once under its ID and once under an email
// lookup key so GetByEmail stays a point read. The lookup write is
// conditional, which is what enforces email uniqueness.
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	lookup, err := attributevalue.MarshalMap(&userItem{
		PK:        emailLookupPK + u.Email,
		SK:        userSK,
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal user").
			Mark(ierr.ErrSystem)
	}

	_, err = r.client.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.client.tableName),
		Item:                lookup,
		ConditionExpression: aws.String("attribute_not_exists(pk)"),
	})
	if err != nil {
		var ccf *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ierr.NewError("user already exists").
				WithHint("An account with this email already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(ierr.ErrDatabase)
	}

	item, err := attributevalue.MarshalMap(&userItem{
		PK:        u.ID,
		SK:        userSK,
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal user").
			Mark(ierr.ErrSystem)
	}

	_, err = r.client.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.client.tableName),
		Item:      item,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) getItem(ctx context.Context, pk string) (*user.User, error) {
	out, err := r.client.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.client.tableName),
		Key: map[string]ddbtypes.AttributeValue{
			"pk": &ddbtypes.AttributeValueMemberS{Value: pk},
			"sk": &ddbtypes.AttributeValueMemberS{Value: userSK},
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	if out.Item == nil {
		return nil, ierr.NewError("user not found").
			WithHint("No account exists for this identity").
			Mark(ierr.ErrNotFound)
	}

	var row userItem
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal user").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.getItem(ctx, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getItem(ctx, emailLookupPK+email)
}
