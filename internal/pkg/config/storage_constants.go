package config

// LocalStorageProvider stores blobs below a directory on the local filesystem
const LocalStorageProvider = "local"

// AzureStorageProvider stores blobs in an Azure Blob Storage container
const AzureStorageProvider = "azure"

// Queue type constants
const (
	MemoryQueueType = "memory"
	KafkaQueueType  = "kafka"
)
