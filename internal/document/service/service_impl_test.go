package service

import (
	"context"
	"testing"

	documentdomain "github.com/agrilinklabs/agrilink/internal/document/domain"
	"github.com/agrilinklabs/agrilink/internal/document/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func setupDocumentService(t *testing.T) documentdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&documentdomain.Document{}))

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: mustNode(t),
		Repo:  repository.Provide(),
	})
}

func validUpload() documentdomain.CreateDocumentRequest {
	return documentdomain.CreateDocumentRequest{
		ActorID:     "1234567890123456789",
		Kind:        documentdomain.KindDiploma,
		FileName:    "diploma.pdf",
		ContentType: "application/pdf",
		SizeBytes:   512 * 1024,
	}
}

func TestCreateDocumentIssuesObjectKey(t *testing.T) {
	svc := setupDocumentService(t)

	document, err := svc.Create(context.Background(), validUpload())
	require.NoError(t, err)

	assert.NotEmpty(t, document.ObjectKey)
	assert.Equal(t, documentdomain.StatusPending, document.Status)

	second, err := svc.Create(context.Background(), validUpload())
	require.NoError(t, err)
	assert.NotEqual(t, document.ObjectKey, second.ObjectKey)
}

func TestCreateDocumentRejectsOversizedUpload(t *testing.T) {
	svc := setupDocumentService(t)

	req := validUpload()
	req.SizeBytes = maxSizeBytes + 1
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, documentdomain.ErrInvalidFile)
}

func TestCreateDocumentRejectsUnknownKind(t *testing.T) {
	svc := setupDocumentService(t)

	req := validUpload()
	req.Kind = "selfie"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, documentdomain.ErrInvalidKind)
}

func TestReviewDocumentApprove(t *testing.T) {
	svc := setupDocumentService(t)

	document, err := svc.Create(context.Background(), validUpload())
	require.NoError(t, err)

	reviewed, err := svc.Review(context.Background(), documentdomain.ReviewDocumentRequest{
		ID:     document.ID.String(),
		Status: documentdomain.StatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, documentdomain.StatusApproved, reviewed.Status)
}

func TestReviewDocumentRejectionNeedsNote(t *testing.T) {
	svc := setupDocumentService(t)

	document, err := svc.Create(context.Background(), validUpload())
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), documentdomain.ReviewDocumentRequest{
		ID:     document.ID.String(),
		Status: documentdomain.StatusRejected,
	})
	assert.ErrorIs(t, err, documentdomain.ErrInvalidReview)

	reviewed, err := svc.Review(context.Background(), documentdomain.ReviewDocumentRequest{
		ID:         document.ID.String(),
		Status:     documentdomain.StatusRejected,
		ReviewNote: "document expired in 2023",
	})
	require.NoError(t, err)
	assert.Equal(t, documentdomain.StatusRejected, reviewed.Status)
	assert.Equal(t, "document expired in 2023", reviewed.ReviewNote)
}

func TestReviewDocumentOnlyOnce(t *testing.T) {
	svc := setupDocumentService(t)

	document, err := svc.Create(context.Background(), validUpload())
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), documentdomain.ReviewDocumentRequest{
		ID:     document.ID.String(),
		Status: documentdomain.StatusApproved,
	})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), documentdomain.ReviewDocumentRequest{
		ID:         document.ID.String(),
		Status:     documentdomain.StatusRejected,
		ReviewNote: "changed my mind",
	})
	assert.ErrorIs(t, err, documentdomain.ErrAlreadyReviewed)
}
