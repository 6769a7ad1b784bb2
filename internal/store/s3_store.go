package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ignatzorin/fits-backend/internal/logger"
)

// Client описывает используемое подмножество S3 API.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store хранит коллекции как объекты <prefix>/<key>.json в бакете.
// Используется в production.
type S3Store struct {
	client Client
	bucket string
	prefix string
	seeds  *SeedSource
}

// NewS3Store создаёт хранилище поверх S3 с fallback на seed-данные.
func NewS3Store(client Client, bucket, prefix string, seeds *SeedSource) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix, seeds: seeds}
}

// Read читает коллекцию из S3. Любая ошибка чтения — отсутствующий объект,
// сетевой сбой, повреждённый JSON — деградирует до seed-данных и логируется.
// Наружу ошибка чтения не поднимается: сайт продолжает работать на
// стартовом контенте вместо падения.
func (s *S3Store) Read(ctx context.Context, key string, out any) error {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		s.degrade(key, err)
		return s.seeds.Read(key, out)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		s.degrade(key, err)
		return s.seeds.Read(key, out)
	}

	if len(data) == 0 {
		s.degrade(key, fmt.Errorf("пустой объект"))
		return s.seeds.Read(key, out)
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.degrade(key, err)
		return s.seeds.Read(key, out)
	}
	return nil
}

// Write перезаписывает объект коллекции целиком. Атомарности сверх того,
// что даёт сам S3, нет: побеждает последняя запись.
func (s *S3Store) Write(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: не удалось сериализовать коллекцию %s: %w", key, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("store: не удалось записать коллекцию %s в S3: %w", key, err)
	}
	return nil
}

func (s *S3Store) objectKey(key string) string {
	return s.prefix + "/" + key + ".json"
}

// degrade фиксирует деградацию чтения в логе на уровне Error, чтобы
// оператор мог отличить сбой хранилища от действительно пустых данных.
func (s *S3Store) degrade(key string, cause error) {
	logger.WithComponent("store").WithField("key", key).
		Errorf("чтение из S3 не удалось, используем seed-данные: %v", cause)
}
