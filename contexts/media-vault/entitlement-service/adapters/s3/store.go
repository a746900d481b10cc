package s3adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/valueobjects"
)

const metadataSuffix = ".meta.json"

// Store keeps object content in an S3-compatible bucket (MinIO in
// development). The ACL travels as a JSON sidecar document next to the
// content key, written before the content so a readable object always has a
// policy.
type Store struct {
	client *s3.Client
	bucket string
	logger *slog.Logger
}

type Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

func NewStore(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &Store{
		client: client,
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

type metadataDocument struct {
	Path        string    `json:"path"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Owner       string    `json:"owner"`
	Visibility  string    `json:"visibility"`
	Rules       []ruleDoc `json:"rules,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ruleDoc struct {
	GranteeType string `json:"grantee_type"`
	GranteeID   string `json:"grantee_id,omitempty"`
	Permission  string `json:"permission"`
}

func (s *Store) GetMetadata(ctx context.Context, path string) (entities.ObjectMetadata, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path + metadataSuffix),
	})
	if err != nil {
		if isNotFound(err) {
			return entities.ObjectMetadata{}, domainerrors.ErrObjectNotFound
		}
		return entities.ObjectMetadata{}, err
	}
	defer out.Body.Close()

	var doc metadataDocument
	if err := json.NewDecoder(out.Body).Decode(&doc); err != nil {
		return entities.ObjectMetadata{}, err
	}
	return docToMetadata(doc), nil
}

func (s *Store) WriteObject(ctx context.Context, metadata entities.ObjectMetadata, content io.Reader) error {
	doc := metadataToDoc(metadata)
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(metadata.Path + metadataSuffix),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return err
	}
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(metadata.Path),
		Body:        content,
		ContentType: aws.String(metadata.ContentType),
	}); err != nil {
		return err
	}
	return nil
}

func (s *Store) OpenObject(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrObjectNotFound
		}
		return nil, err
	}
	return out.Body, nil
}

func docToMetadata(doc metadataDocument) entities.ObjectMetadata {
	rules := make([]valueobjects.Rule, 0, len(doc.Rules))
	for _, rule := range doc.Rules {
		rules = append(rules, valueobjects.Rule{
			GranteeType: valueobjects.GranteeType(rule.GranteeType),
			GranteeID:   rule.GranteeID,
			Permission:  valueobjects.Permission(rule.Permission),
		})
	}
	return entities.ObjectMetadata{
		Path:        doc.Path,
		ContentType: doc.ContentType,
		Size:        doc.Size,
		ACL: valueobjects.ACL{
			Owner:      doc.Owner,
			Visibility: valueobjects.Visibility(doc.Visibility),
			Rules:      rules,
		},
		CreatedAt: doc.CreatedAt,
	}
}

func metadataToDoc(metadata entities.ObjectMetadata) metadataDocument {
	rules := make([]ruleDoc, 0, len(metadata.ACL.Rules))
	for _, rule := range metadata.ACL.Rules {
		rules = append(rules, ruleDoc{
			GranteeType: string(rule.GranteeType),
			GranteeID:   rule.GranteeID,
			Permission:  string(rule.Permission),
		})
	}
	return metadataDocument{
		Path:        metadata.Path,
		ContentType: metadata.ContentType,
		Size:        metadata.Size,
		Owner:       metadata.ACL.Owner,
		Visibility:  string(metadata.ACL.Visibility),
		Rules:       rules,
		CreatedAt:   metadata.CreatedAt.UTC(),
	}
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}
