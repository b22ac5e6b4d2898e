package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

var (
	s3Session *session.Session
	uploader  *s3manager.Uploader
	useS3     bool
	baseURL   string
	uploadDir string
)

// InitStorage initializes either S3 or local storage based on configuration
func InitStorage() error {
	awsRegion := os.Getenv("AWS_REGION")
	awsAccessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	awsSecretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")

	if awsRegion != "" && awsAccessKey != "" && awsSecretKey != "" {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(awsRegion),
			Credentials: credentials.NewStaticCredentials(
				awsAccessKey,
				awsSecretKey,
				"",
			),
		})
		if err != nil {
			return fmt.Errorf("failed to create AWS session: %v", err)
		}

		s3Session = sess
		uploader = s3manager.NewUploader(sess)
		useS3 = true

		fmt.Println("AWS S3 storage initialized successfully")
		return nil
	}

	// Fallback to local storage
	useS3 = false
	uploadDir = os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %v", err)
	}

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	fmt.Println("Local file storage initialized (S3 not configured)")
	return nil
}

// UploadFile stores a car image or identification scan and returns its
// public URL. folder namespaces the object (e.g. "cars", "identification").
func UploadFile(fileHeader *multipart.FileHeader, folder string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer file.Close()

	filename := fmt.Sprintf("%s/%d-%s%s",
		folder,
		time.Now().Unix(),
		uuid.New().String()[:8],
		filepath.Ext(fileHeader.Filename),
	)

	if useS3 {
		bucket := os.Getenv("AWS_S3_BUCKET")
		result, err := uploader.Upload(&s3manager.UploadInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(filename),
			Body:   file,
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload to S3: %v", err)
		}
		return result.Location, nil
	}

	// Local fallback
	dstPath := filepath.Join(uploadDir, filepath.Base(filename))
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create local file: %v", err)
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(file); err != nil {
		return "", fmt.Errorf("failed to write local file: %v", err)
	}

	return fmt.Sprintf("%s/uploads/%s", baseURL, filepath.Base(filename)), nil
}
