package core

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for chunks.
// It is generated from content via hashing, never from a sequence, so that
// identical input always maps to the same identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ChunkID derives the identifier for a chunk from its source document,
// position and content. Stable across runs for unchanged input, which is
// what makes vector-store upserts idempotent.
func ChunkID(source string, index int, content string) ID {
	return IDFromContent(source + "\x00" + strconv.Itoa(index) + "\x00" + content)
}

// HashContent computes a 64-bit BLAKE2b digest of raw document bytes.
// Used by the ledger to detect unchanged documents between runs.
func HashContent(data []byte) uint64 {
	h, _ := blake2b.New(8, nil)
	h.Write(data)
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// FileDetail describes one downloaded document in a manifest.
type FileDetail struct {
	FilePath     string    `json:"file_path"`     // Local staged path
	Key          string    `json:"key"`           // Source object key or file name
	Size         int64     `json:"size"`          // Size in bytes as reported by the source
	LastModified time.Time `json:"last_modified"` // Source modification time
}

// ManifestMetadata carries aggregate information about a provider run.
type ManifestMetadata struct {
	Bucket    string       `json:"bucket"`
	Endpoint  string       `json:"endpoint"`
	FileCount int          `json:"file_count"`
	Details   []FileDetail `json:"details"`
}

// Manifest is the intermediate artifact between the document provider and
// the document processor. DocumentPaths is ordered by source key.
type Manifest struct {
	DocumentPaths []string         `json:"document_paths"`
	Metadata      ManifestMetadata `json:"metadata"`
}

// KeyFor returns the source key recorded for a staged path, or the empty
// string if the manifest has no detail entry for it.
func (m *Manifest) KeyFor(path string) string {
	for i := range m.Metadata.Details {
		if m.Metadata.Details[i].FilePath == path {
			return m.Metadata.Details[i].Key
		}
	}
	return ""
}

// Chunk is a contiguous span of text extracted from one source document,
// optionally carrying its embedding vector. Chunks are created during
// processing and discarded after insertion.
type Chunk struct {
	Id      ID
	Content string
	Source  string // Source document key or path
	Index   int    // Position of the chunk within its document
	Vector  []float32
}

// Status strings reported for vector-store registration and insertion.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// DocumentResult records a successfully processed document.
type DocumentResult struct {
	File   string `json:"file"`
	Chunks int    `json:"chunks"`
}

// DocumentFailure records a document that could not be processed.
type DocumentFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// MetricsReport is the aggregate record of one processing run.
// It is created once per run and never mutated after emission.
type MetricsReport struct {
	DocumentCount        int               `json:"document_count"`
	ProcessedDocuments   []DocumentResult  `json:"processed_documents"`
	FailedDocuments      []DocumentFailure `json:"failed_documents"`
	TotalChunks          int               `json:"total_chunks"`
	VectorDBRegistration string            `json:"vector_db_registration"`
	VectorDBInsertion    string            `json:"vector_db_insertion"`
}

// NewMetricsReport creates a report for a run over documentCount documents.
// Slices are initialized so the emitted JSON contains arrays, not null.
func NewMetricsReport(documentCount int) *MetricsReport {
	return &MetricsReport{
		DocumentCount:      documentCount,
		ProcessedDocuments: []DocumentResult{},
		FailedDocuments:    []DocumentFailure{},
	}
}

// AddProcessed records a successfully processed document and accumulates
// its chunk count into TotalChunks.
func (r *MetricsReport) AddProcessed(file string, chunks int) {
	r.ProcessedDocuments = append(r.ProcessedDocuments, DocumentResult{File: file, Chunks: chunks})
	r.TotalChunks += chunks
}

// AddFailed records a document that failed processing.
func (r *MetricsReport) AddFailed(file string, err error) {
	failure := DocumentFailure{File: file}
	if err != nil {
		failure.Error = err.Error()
	}
	r.FailedDocuments = append(r.FailedDocuments, failure)
}
