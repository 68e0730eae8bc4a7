package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/quadnav/blobstore"
)

// CurrentName is the blob name of the pointer to the latest manifest.
const CurrentName = "CURRENT"

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConcurrentModification is returned when a concurrent CURRENT update is detected.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// DDBCommitStore is a blobstore.BlobStore backed by S3 that keeps the
// CURRENT pointer in DynamoDB. S3 has no compare-and-swap, so every CURRENT
// update is a conditional insert of the next version number; two writers
// racing for the same version cannot both win.
//
// Table schema:
//   - Partition key: base_uri (string)
//   - Sort key: version (number)
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name quadnav-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DDBCommitStore struct {
	blobs     blobstore.BlobStore
	ddbClient DDBClient
	tableName string
	baseURI   string
}

// NewDDBCommitStore creates a commit store. blobs holds every blob except
// CURRENT; baseURI (e.g. "s3://bucket/prefix") partitions the table.
func NewDDBCommitStore(blobs blobstore.BlobStore, ddbClient DDBClient, tableName, baseURI string) *DDBCommitStore {
	return &DDBCommitStore{
		blobs:     blobs,
		ddbClient: ddbClient,
		tableName: tableName,
		baseURI:   baseURI,
	}
}

// Open opens a blob for reading. CURRENT resolves to the latest committed
// version.
func (s *DDBCommitStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if name != CurrentName {
		return s.blobs.Open(ctx, name)
	}
	version, target, err := s.latest(ctx)
	if err != nil {
		return nil, err
	}
	if version == 0 {
		return nil, blobstore.ErrNotFound
	}
	return &currentBlob{content: []byte(target)}, nil
}

// Put writes a blob. CURRENT is committed with a conditional write.
func (s *DDBCommitStore) Put(ctx context.Context, name string, data []byte) error {
	if name == CurrentName {
		return s.commit(ctx, string(data))
	}
	return s.blobs.Put(ctx, name, data)
}

// Delete deletes a blob. The CURRENT history is never deleted.
func (s *DDBCommitStore) Delete(ctx context.Context, name string) error {
	if name == CurrentName {
		return errors.New("CURRENT cannot be deleted")
	}
	return s.blobs.Delete(ctx, name)
}

// List lists blobs with prefix.
func (s *DDBCommitStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.blobs.List(ctx, prefix)
}

// Version returns the latest committed version, 0 if none.
func (s *DDBCommitStore) Version(ctx context.Context) (uint64, error) {
	v, _, err := s.latest(ctx)
	return v, err
}

func (s *DDBCommitStore) latest(ctx context.Context) (uint64, string, error) {
	resp, err := s.ddbClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.baseURI},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to query DynamoDB: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in DynamoDB")
	}
	targetAttr, ok := item["manifest"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid manifest attribute in DynamoDB")
	}
	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}
	return version, targetAttr.Value, nil
}

func (s *DDBCommitStore) commit(ctx context.Context, target string) error {
	current, _, err := s.latest(ctx)
	if err != nil {
		return err
	}

	_, err = s.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"base_uri": &types.AttributeValueMemberS{Value: s.baseURI},
			"version":  &types.AttributeValueMemberN{Value: strconv.FormatUint(current+1, 10)},
			"manifest": &types.AttributeValueMemberS{Value: target},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("failed to commit version to DynamoDB: %w", err)
	}
	return nil
}

type currentBlob struct {
	content []byte
}

func (b *currentBlob) Close() error { return nil }

func (b *currentBlob) Size() int64 { return int64(len(b.content)) }

func (b *currentBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if off >= int64(len(b.content)) {
		return 0, io.EOF
	}
	n := copy(p, b.content[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
