package artifacts

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

const (
	digestComputationErrorTemplateConstant = "failed to digest %s: %v"
	digestReportLineTemplateConstant       = "%s  %s"
)

// DigestComputationError reports a failure while hashing a single artifact.
type DigestComputationError struct {
	Path  string
	Cause error
}

// Error describes the digest failure including the artifact path.
func (computationError DigestComputationError) Error() string {
	return fmt.Sprintf(digestComputationErrorTemplateConstant, computationError.Path, computationError.Cause)
}

// Unwrap exposes the underlying cause.
func (computationError DigestComputationError) Unwrap() error {
	return computationError.Cause
}

// FileOpener opens artifact files for reading.
type FileOpener func(artifactPath string) (io.ReadCloser, error)

// ArtifactDigest pairs an artifact path with its MD5 digest.
type ArtifactDigest struct {
	Path   string
	Digest string
}

// String renders the digest in the coreutils checksum line format.
func (artifactDigest ArtifactDigest) String() string {
	return fmt.Sprintf(digestReportLineTemplateConstant, artifactDigest.Digest, artifactDigest.Path)
}

// ChecksumService computes MD5 digests for release artifacts.
type ChecksumService struct {
	fileOpener FileOpener
}

// NewChecksumService constructs a ChecksumService backed by the operating system.
func NewChecksumService() *ChecksumService {
	return NewChecksumServiceWithOpener(nil)
}

// NewChecksumServiceWithOpener constructs a ChecksumService with a custom file opener.
func NewChecksumServiceWithOpener(opener FileOpener) *ChecksumService {
	if opener == nil {
		opener = func(artifactPath string) (io.ReadCloser, error) {
			return os.Open(artifactPath)
		}
	}
	return &ChecksumService{fileOpener: opener}
}

// DigestArtifact hashes a single artifact file.
func (service *ChecksumService) DigestArtifact(executionContext context.Context, artifactPath string) (ArtifactDigest, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return ArtifactDigest{}, contextError
	}

	artifactReader, openError := service.fileOpener(artifactPath)
	if openError != nil {
		return ArtifactDigest{}, DigestComputationError{Path: artifactPath, Cause: openError}
	}
	defer artifactReader.Close()

	digestAccumulator := md5.New()
	if _, copyError := io.Copy(digestAccumulator, artifactReader); copyError != nil {
		return ArtifactDigest{}, DigestComputationError{Path: artifactPath, Cause: copyError}
	}

	return ArtifactDigest{
		Path:   artifactPath,
		Digest: hex.EncodeToString(digestAccumulator.Sum(nil)),
	}, nil
}

// DigestArtifacts hashes the provided artifact files in order and stops at the first failure.
func (service *ChecksumService) DigestArtifacts(executionContext context.Context, artifactPaths []string) ([]ArtifactDigest, error) {
	digests := make([]ArtifactDigest, 0, len(artifactPaths))
	for _, artifactPath := range artifactPaths {
		artifactDigest, digestError := service.DigestArtifact(executionContext, artifactPath)
		if digestError != nil {
			return nil, digestError
		}
		digests = append(digests, artifactDigest)
	}

	return digests, nil
}
