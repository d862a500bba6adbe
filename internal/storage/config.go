package storage

// Backend names accepted by UPLOAD_BACKEND.
const (
	BackendLocal = "local"
	BackendMinIO = "minio"
)

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}
