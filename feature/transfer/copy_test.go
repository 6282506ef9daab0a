package transfer

import (
	"context"
	"testing"

	"rods-warden/core/store"
	"rods-warden/core/store/mocks"
	"rods-warden/feature/integrity/checks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func replicas(sum string) []store.Replica {
	return []store.Replica{
		{Number: 0, Resource: "replica-1", Checksum: sum, Valid: true},
		{Number: 1, Resource: "replica-2", Checksum: sum, Valid: true},
	}
}

func TestCopyObject(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	t.Run("To Empty Destination", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Stat", ctx, "/zone/a.txt").Return(store.KindDataObject, nil)
		client.On("Stat", ctx, "/zone/b.txt").Return(store.KindNone, nil)
		client.On("CopyObject", ctx, "/zone/a.txt", "/zone/b.txt", true).Return(nil)

		processed, copied, err := Copy(ctx, client, "/zone/a.txt", "/zone/b.txt", Options{}, log)
		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		assert.Equal(t, 1, copied)
		client.AssertExpectations(t)
	})

	t.Run("Into A Collection", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Stat", ctx, "/zone/a.txt").Return(store.KindDataObject, nil)
		client.On("Stat", ctx, "/zone/dest").Return(store.KindCollection, nil)
		client.On("CopyObject", ctx, "/zone/a.txt", "/zone/dest/a.txt", true).Return(nil)

		processed, copied, err := Copy(ctx, client, "/zone/a.txt", "/zone/dest", Options{}, log)
		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		assert.Equal(t, 1, copied)
		client.AssertExpectations(t)
	})

	t.Run("Onto An Existing Object Without ExistOK", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Stat", ctx, "/zone/a.txt").Return(store.KindDataObject, nil)
		client.On("Stat", ctx, "/zone/b.txt").Return(store.KindDataObject, nil)
		client.On("CopyObject", ctx, "/zone/a.txt", "/zone/b.txt", true).
			Return(store.Errorf(store.CodeAlreadyExists, "object exists"))

		_, copied, err := Copy(ctx, client, "/zone/a.txt", "/zone/b.txt", Options{}, log)
		require.Error(t, err)
		assert.Equal(t, 0, copied)

		var se *store.Error
		assert.ErrorAs(t, err, &se)
	})

	t.Run("Propagates Metadata And Permissions", func(t *testing.T) {
		client := new(mocks.Client)
		avus := []store.AVU{{Attr: "md5", Value: "abc"}}
		acl := []store.Access{{User: "dog", Level: "read"}}

		client.On("Stat", ctx, "/zone/a.txt").Return(store.KindDataObject, nil)
		client.On("Stat", ctx, "/zone/b.txt").Return(store.KindNone, nil)
		client.On("CopyObject", ctx, "/zone/a.txt", "/zone/b.txt", true).Return(nil)
		client.On("Metadata", ctx, "/zone/a.txt").Return(avus, nil)
		client.On("AddMetadata", ctx, "/zone/b.txt", avus).Return(1, nil)
		client.On("Permissions", ctx, "/zone/a.txt").Return(acl, nil)
		client.On("AddPermissions", ctx, "/zone/b.txt", acl).Return(1, nil)

		_, _, err := Copy(ctx, client, "/zone/a.txt", "/zone/b.txt",
			Options{AVU: true, ACL: true}, log)
		require.NoError(t, err)
		client.AssertExpectations(t)
	})
}

func TestCopyExistOK(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	t.Run("Identical Destination Is Skipped", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Stat", ctx, "/zone/a.txt").Return(store.KindDataObject, nil)
		client.On("Stat", ctx, "/zone/b.txt").Return(store.KindDataObject, nil)
		client.On("Replicas", mock.Anything, "/zone/a.txt").Return(replicas("abc"), nil)
		client.On("Replicas", mock.Anything, "/zone/b.txt").Return(replicas("abc"), nil)
		client.On("Metadata", mock.Anything, mock.Anything).Return(nil, nil)

		processed, copied, err := Copy(ctx, client, "/zone/a.txt", "/zone/b.txt",
			Options{ExistOK: true}, log)
		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		assert.Equal(t, 0, copied)
		client.AssertNotCalled(t, "CopyObject",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Different Destination Checksum Fails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Stat", ctx, "/zone/a.txt").Return(store.KindDataObject, nil)
		client.On("Stat", ctx, "/zone/b.txt").Return(store.KindDataObject, nil)
		client.On("Replicas", mock.Anything, "/zone/a.txt").Return(replicas("abc"), nil)
		client.On("Replicas", mock.Anything, "/zone/b.txt").Return(replicas("def"), nil)
		client.On("Metadata", mock.Anything, mock.Anything).Return(nil, nil)

		_, copied, err := Copy(ctx, client, "/zone/a.txt", "/zone/b.txt",
			Options{ExistOK: true}, log)
		assert.Equal(t, 0, copied)

		var cerr *checks.ChecksumError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "/zone/b.txt", cerr.Path)
		assert.Equal(t, "abc", cerr.Expected)
		assert.Equal(t, []string{"def"}, cerr.Observed)
	})

	t.Run("Divergent Source Replicas Fail", func(t *testing.T) {
		client := new(mocks.Client)
		divergent := []store.Replica{
			{Number: 0, Checksum: "abc", Valid: true},
			{Number: 1, Checksum: "xyz", Valid: true},
		}
		client.On("Stat", ctx, "/zone/a.txt").Return(store.KindDataObject, nil)
		client.On("Stat", ctx, "/zone/b.txt").Return(store.KindDataObject, nil)
		client.On("Replicas", mock.Anything, "/zone/a.txt").Return(divergent, nil)
		client.On("Replicas", mock.Anything, "/zone/b.txt").Return(replicas("abc"), nil)
		client.On("Metadata", mock.Anything, mock.Anything).Return(nil, nil)

		_, _, err := Copy(ctx, client, "/zone/a.txt", "/zone/b.txt",
			Options{ExistOK: true}, log)

		var cerr *checks.ChecksumError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "/zone/a.txt", cerr.Path)
	})
}

func TestCopyCollection(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	t.Run("Recursive", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Stat", ctx, "/zone/src").Return(store.KindCollection, nil)
		client.On("Stat", ctx, "/zone/dst").Return(store.KindCollection, nil)
		client.On("CreateCollection", ctx, "/zone/dst/src", false).Return(nil)
		client.On("List", ctx, "/zone/src").Return([]store.Entry{
			{Path: "/zone/src/a.txt", Kind: store.KindDataObject},
			{Path: "/zone/src/sub", Kind: store.KindCollection},
		}, nil)
		client.On("Stat", ctx, "/zone/src/a.txt").Return(store.KindDataObject, nil)
		client.On("Stat", ctx, "/zone/dst/src").Return(store.KindCollection, nil)
		client.On("CopyObject", ctx, "/zone/src/a.txt", "/zone/dst/src/a.txt", true).Return(nil)
		client.On("Stat", ctx, "/zone/src/sub").Return(store.KindCollection, nil)
		client.On("CreateCollection", ctx, "/zone/dst/src/sub", false).Return(nil)
		client.On("List", ctx, "/zone/src/sub").Return([]store.Entry{}, nil)

		processed, copied, err := Copy(ctx, client, "/zone/src", "/zone/dst",
			Options{Recurse: true}, log)
		require.NoError(t, err)
		assert.Equal(t, 3, processed)
		assert.Equal(t, 3, copied)
		client.AssertExpectations(t)
	})

	t.Run("Without Recurse Only The Collection Itself", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Stat", ctx, "/zone/src").Return(store.KindCollection, nil)
		client.On("Stat", ctx, "/zone/dst").Return(store.KindNone, nil)
		client.On("CreateCollection", ctx, "/zone/dst/src", false).Return(nil)

		processed, copied, err := Copy(ctx, client, "/zone/src", "/zone/dst", Options{}, log)
		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		assert.Equal(t, 1, copied)
		client.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("ExistOK Skips An Existing Destination Collection", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Stat", ctx, "/zone/src").Return(store.KindCollection, nil)
		client.On("Stat", ctx, "/zone/dst").Return(store.KindCollection, nil)
		client.On("Stat", ctx, "/zone/dst/src").Return(store.KindCollection, nil)

		processed, copied, err := Copy(ctx, client, "/zone/src", "/zone/dst",
			Options{ExistOK: true}, log)
		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		assert.Equal(t, 0, copied)
		client.AssertNotCalled(t, "CreateCollection", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCopyInvalidPathTypes(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	t.Run("Collection Onto A Data Object", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Stat", ctx, "/zone/src").Return(store.KindCollection, nil)
		client.On("Stat", ctx, "/zone/b.txt").Return(store.KindDataObject, nil)

		_, _, err := Copy(ctx, client, "/zone/src", "/zone/b.txt", Options{}, log)
		assert.ErrorIs(t, err, ErrInvalidPathTypes)
	})

	t.Run("Missing Source", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Stat", ctx, "/zone/gone").Return(store.KindNone, nil)
		client.On("Stat", ctx, "/zone/dst").Return(store.KindCollection, nil)

		_, _, err := Copy(ctx, client, "/zone/gone", "/zone/dst", Options{}, log)
		assert.ErrorIs(t, err, ErrInvalidPathTypes)
	})
}
