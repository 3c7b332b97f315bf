// Package pictureBed 图片上传工具
// 将图片写入 S3 兼容对象存储，返回可访问的 URL
package pictureBed

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	appconfig "club-portal-system/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type PictureBed struct {
	Endpoint     string
	BaseURL      string
	Bucket       string
	Region       string
	Prefix       string
	UsePathStyle bool

	accessKey string
	secretKey string

	s3Client *s3.Client
	uploader *manager.Uploader
}

var Default *PictureBed

// Init 根据配置创建默认图床实例，未配置 bucket 时跳过
func Init() {
	cfg := appconfig.Get().S3
	if cfg.Bucket == "" {
		return
	}
	Default = &PictureBed{
		Endpoint:     cfg.Endpoint,
		BaseURL:      cfg.BaseURL,
		Bucket:       cfg.Bucket,
		Region:       cfg.Region,
		Prefix:       cfg.Prefix,
		UsePathStyle: cfg.UsePathStyle,
		accessKey:    cfg.AccessKey,
		secretKey:    cfg.SecretAccessKey,
	}
}

// InitS3 初始化 S3 客户端，幂等
func (pb *PictureBed) InitS3(ctx context.Context) error {
	if pb.s3Client != nil {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(pb.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(pb.accessKey, pb.secretKey, ""),
		),
	)
	if err != nil {
		return fmt.Errorf("加载 S3 配置失败: %w", err)
	}

	pb.s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if pb.Endpoint != "" {
			o.BaseEndpoint = aws.String(pb.Endpoint)
		}
		o.UsePathStyle = pb.UsePathStyle
	})
	pb.uploader = manager.NewUploader(pb.s3Client)
	return nil
}

// SaveImage 上传图片并返回访问 URL
func (pb *PictureBed) SaveImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if err := pb.InitS3(ctx); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	key := pb.objectKey(fileHeader.Filename)

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := pb.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(pb.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", fmt.Errorf("上传图片失败: %w", err)
	}

	return pb.objectURL(key), nil
}

// objectKey 生成唯一对象 key（时间戳 + 原始扩展名，带前缀）
func (pb *PictureBed) objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	unique := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	key := path.Join(strings.Trim(pb.Prefix, "/"), unique)
	return strings.TrimLeft(key, "/")
}

func (pb *PictureBed) objectURL(key string) string {
	base := strings.TrimRight(pb.BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(pb.Endpoint, "/")
	}
	return base + "/" + key
}
