package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/satvik2131/lamars-truck-backend/internal/model"
	"github.com/spf13/viper"
)

const (
	MetadataStoreMongo   = "mongodb"
	MetadataStoreMariaDB = "mariadb"

	MediaStoreCloudinary = "cloudinary"
	MediaStoreMinio      = "minio"
	MediaStoreS3         = "s3"
)

type Settings struct {
	ServerPort         int
	Variant            model.URLLayout
	MultipartMaxMemory int64

	MetadataStore   string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	MediaStore     string
	MediaFolder    string
	CloudName      string
	CloudAPIKey    string
	CloudAPISecret string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	S3Region       string
	S3Bucket       string

	RedisAddr     string
	RedisPassword string
	ListCacheTTL  time.Duration
	OrphanCleanup bool
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	v.SetDefault("PORT", 3000)
	v.SetDefault("UPLOAD_VARIANT", string(model.LayoutSingle))
	v.SetDefault("MULTIPART_MAX_MEMORY", 32<<20)
	v.SetDefault("METADATA_STORE", MetadataStoreMongo)
	v.SetDefault("MONGODB_DATABASE", "test")
	v.SetDefault("MONGODB_COLLECTION", "datas")
	v.SetDefault("MARIADB_MAX_OPEN_CONN", 10)
	v.SetDefault("MARIADB_MAX_IDLE_CONNS", 5)
	v.SetDefault("MARIADB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("MEDIA_STORE", MediaStoreCloudinary)
	v.SetDefault("MEDIA_FOLDER", "uploads")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("LIST_CACHE_TTL", 60)
	v.SetDefault("ORPHAN_CLEANUP", false)

	variant := model.URLLayout(v.GetString("UPLOAD_VARIANT"))
	if !variant.Valid() {
		return nil, fmt.Errorf("UPLOAD_VARIANT must be one of single, multi; got %q", variant)
	}

	s := &Settings{
		ServerPort:         v.GetInt("PORT"),
		Variant:            variant,
		MultipartMaxMemory: v.GetInt64("MULTIPART_MAX_MEMORY"),
		MetadataStore:      v.GetString("METADATA_STORE"),
		MongoDatabase:      v.GetString("MONGODB_DATABASE"),
		MongoCollection:    v.GetString("MONGODB_COLLECTION"),
		MaxOpenConns:       v.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:       v.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime:    time.Duration(v.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		MediaStore:         v.GetString("MEDIA_STORE"),
		MediaFolder:        v.GetString("MEDIA_FOLDER"),
		MinioUseSSL:        v.GetBool("MINIO_USE_SSL"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		ListCacheTTL:       time.Duration(v.GetInt("LIST_CACHE_TTL")) * time.Second,
		OrphanCleanup:      v.GetBool("ORPHAN_CLEANUP"),
	}

	switch s.MetadataStore {
	case MetadataStoreMongo:
		if !v.IsSet("MONGODB_URI") {
			return nil, fmt.Errorf("MONGODB_URI is required")
		}
		s.MongoURI = v.GetString("MONGODB_URI")
	case MetadataStoreMariaDB:
		if !v.IsSet("MARIADB_DSN") {
			return nil, fmt.Errorf("MARIADB_DSN is required")
		}
		s.MariaDBDSN = v.GetString("MARIADB_DSN")
	default:
		return nil, fmt.Errorf("METADATA_STORE must be one of mongodb, mariadb; got %q", s.MetadataStore)
	}

	var required []string
	switch s.MediaStore {
	case MediaStoreCloudinary:
		required = []string{"CLOUD_NAME", "API_KEY", "API_SECRET"}
	case MediaStoreMinio:
		required = []string{"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET"}
	case MediaStoreS3:
		required = []string{"S3_REGION", "S3_BUCKET"}
	default:
		return nil, fmt.Errorf("MEDIA_STORE must be one of cloudinary, minio, s3; got %q", s.MediaStore)
	}
	for _, key := range required {
		if !v.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}
	s.CloudName = v.GetString("CLOUD_NAME")
	s.CloudAPIKey = v.GetString("API_KEY")
	s.CloudAPISecret = v.GetString("API_SECRET")
	s.MinioEndpoint = v.GetString("MINIO_ENDPOINT")
	s.MinioAccessKey = v.GetString("MINIO_ACCESS_KEY")
	s.MinioSecretKey = v.GetString("MINIO_SECRET_KEY")
	s.MinioBucket = v.GetString("MINIO_BUCKET")
	s.S3Region = v.GetString("S3_REGION")
	s.S3Bucket = v.GetString("S3_BUCKET")

	if s.OrphanCleanup && s.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is required when ORPHAN_CLEANUP is enabled")
	}

	return s, nil
}
