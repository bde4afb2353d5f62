package repository

import (
	"errors"
	"time"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// nowISO formats the current instant the way dynamodbattribute encodes
// time.Time fields, so expression-written timestamps stay comparable.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func isConditionalCheckFailed(err error) bool {
	var awsErr awserr.Error
	if errors.As(err, &awsErr) {
		return awsErr.Code() == dynamodb.ErrCodeConditionalCheckFailedException
	}
	return false
}
