package persistence

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-service/internal/config"
)

// Dynamo wraps the DynamoDB document store client.
type Dynamo struct {
	Client *dynamodb.DynamoDB
}

// NewDynamo builds a DynamoDB client. Endpoint override is used for local
// development against dynamodb-local; credentials come from the default
// provider chain.
func NewDynamo(cfg config.DynamoConfig, logger *zap.Logger) (*Dynamo, error) {
	awsCfg := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, err
	}

	logger.Info("dynamodb client configured",
		zap.String("region", cfg.Region),
		zap.String("orders_table", cfg.OrdersTable),
		zap.String("products_table", cfg.ProductsTable),
		zap.String("users_table", cfg.UsersTable))

	return &Dynamo{Client: dynamodb.New(sess)}, nil
}

// Ping verifies connectivity by listing a single table.
func (d *Dynamo) Ping(ctx context.Context) error {
	if d == nil || d.Client == nil {
		return errors.New("dynamodb client not configured")
	}
	_, err := d.Client.ListTablesWithContext(ctx, &dynamodb.ListTablesInput{Limit: aws.Int64(1)})
	return err
}
