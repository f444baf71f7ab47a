package service_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/repository"
	"github.com/liftworks/service-api/internal/service"
	"github.com/liftworks/service-api/internal/storage"
	"github.com/liftworks/service-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createAttachmentService(t *testing.T, db *gorm.DB) *service.AttachmentService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return service.NewAttachmentService(repository.NewAttachmentRepository(db), store, zap.NewNop())
}

func TestAttachmentService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAttachmentService(t, db)
	ctx := context.Background()

	t.Run("upload then download round trip", func(t *testing.T) {
		tech := testutil.CreateTestTechnician(t, db, "Ravi")
		content := "signed visit report"

		attachment, err := svc.Upload(ctx, "report.pdf", "application/pdf",
			strings.NewReader(content), &tech.ID)
		require.NoError(t, err)
		assert.Equal(t, "report.pdf", attachment.OriginalName)
		assert.Equal(t, int64(len(content)), attachment.SizeBytes)

		got, reader, err := svc.Download(ctx, attachment.ID)
		require.NoError(t, err)
		defer reader.Close()

		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
		assert.Equal(t, "application/pdf", got.ContentType)
	})

	t.Run("delete removes record and bytes", func(t *testing.T) {
		attachment, err := svc.Upload(ctx, "photo.jpg", "image/jpeg",
			strings.NewReader("jpeg bytes"), nil)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, attachment.ID))

		_, _, err = svc.Download(ctx, attachment.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("unknown attachment", func(t *testing.T) {
		_, _, err := svc.Download(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), service.ErrNotFound)
	})
}
