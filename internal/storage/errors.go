package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
	"github.com/minio/minio-go/v7"
	"github.com/satvik2131/lamars-truck-backend/internal/usecase/record"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %v", record.ErrMediaStoreNotFound, err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fmt.Errorf("%w: %v", record.ErrMediaStoreUnauthorized, err)
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", record.ErrMediaStoreInternal, err)
	}
}

func mapS3Err(err error) error {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return fmt.Errorf("%w: %v", record.ErrMediaStoreNotFound, err)
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "Forbidden":
			return fmt.Errorf("%w: %v", record.ErrMediaStoreUnauthorized, err)
		}
	}
	return fmt.Errorf("%w: %v", record.ErrMediaStoreInternal, err)
}

// mapCloudinaryErr handles both transport errors and the error message
// carried in an otherwise successful API response.
func mapCloudinaryErr(err error, apiMsg string) error {
	if err == nil && apiMsg == "" {
		return nil
	}
	msg := apiMsg
	if err != nil {
		msg = err.Error()
	}
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "not found"):
		return fmt.Errorf("%w: %s", record.ErrMediaStoreNotFound, msg)
	case strings.Contains(lower, "api_key"), strings.Contains(lower, "api key"),
		strings.Contains(lower, "invalid signature"), strings.Contains(lower, "unauthorized"):
		return fmt.Errorf("%w: %s", record.ErrMediaStoreUnauthorized, msg)
	default:
		return fmt.Errorf("%w: %s", record.ErrMediaStoreInternal, msg)
	}
}
