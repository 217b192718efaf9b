package dynamodb

import (
	"context"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/Kabele/invoicely/internal/config"
	ierr "github.com/Kabele/invoicely/internal/errors"
)

// Client wraps the dynamodb client with the configured table.
// All entities share a single table keyed by PK user_id and SK entity#id.
type Client struct {
	db        *dynamodb.Client
	tableName string
}

func NewClient(cfg *config.Configuration) (*Client, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(cfg.DynamoDB.Region),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unable to load AWS SDK config").
			Mark(ierr.ErrSystem)
	}

	return &Client{
		db:        dynamodb.NewFromConfig(awsCfg),
		tableName: cfg.DynamoDB.Table,
	}, nil
}

func (c *Client) DB() *dynamodb.Client {
	return c.db
}
