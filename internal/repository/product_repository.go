package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// ProductPatch carries the optional fields of a partial catalog update. Nil
// fields are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	Category    *string
	Stock       *int
}

// Empty reports whether the patch would change nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.ImageURL == nil && p.Category == nil && p.Stock == nil
}

// ProductRepository encapsulates catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	db    *dynamodb.DynamoDB
	table string
}

// NewProductRepository returns a DynamoDB-backed implementation.
func NewProductRepository(db *dynamodb.DynamoDB, table string) ProductRepository {
	return &productRepository{db: db, table: table}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	item, err := dynamodbattribute.MarshalMap(product)
	if err != nil {
		return err
	}
	_, err = r.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	return err
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	out, err := r.db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]*dynamodb.AttributeValue{
			"id": {S: aws.String(id)},
		},
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}
	var product domain.Product
	if err := dynamodbattribute.UnmarshalMap(out.Item, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	out, err := r.db.ScanWithContext(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.table),
	})
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(out.Items))
	if err := dynamodbattribute.UnmarshalListOfMaps(out.Items, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	parts := make([]string, 0, 7)
	names := map[string]*string{}
	values := map[string]*dynamodb.AttributeValue{}

	setString := func(attr string, val *string) {
		if val == nil {
			return
		}
		placeholder := ":" + strings.ReplaceAll(attr, "_", "")
		parts = append(parts, fmt.Sprintf("#%s = %s", attr, placeholder))
		names["#"+attr] = aws.String(attr)
		values[placeholder] = &dynamodb.AttributeValue{S: aws.String(*val)}
	}

	setString("name", patch.Name)
	setString("description", patch.Description)
	setString("image_url", patch.ImageURL)
	setString("category", patch.Category)
	if patch.Price != nil {
		parts = append(parts, "#price = :price")
		names["#price"] = aws.String("price")
		values[":price"] = &dynamodb.AttributeValue{N: aws.String(formatFloat(*patch.Price))}
	}
	if patch.Stock != nil {
		parts = append(parts, "#stock = :stock")
		names["#stock"] = aws.String("stock")
		values[":stock"] = &dynamodb.AttributeValue{N: aws.String(fmt.Sprintf("%d", *patch.Stock))}
	}

	parts = append(parts, "#updated_at = :updated_at")
	names["#updated_at"] = aws.String("updated_at")
	values[":updated_at"] = &dynamodb.AttributeValue{S: aws.String(nowISO())}

	out, err := r.db.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]*dynamodb.AttributeValue{
			"id": {S: aws.String(id)},
		},
		UpdateExpression:          aws.String("SET " + strings.Join(parts, ", ")),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              aws.String(dynamodb.ReturnValueAllNew),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var product domain.Product
	if err := dynamodbattribute.UnmarshalMap(out.Attributes, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]*dynamodb.AttributeValue{
			"id": {S: aws.String(id)},
		},
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil && isConditionalCheckFailed(err) {
		return ErrNotFound
	}
	return err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
