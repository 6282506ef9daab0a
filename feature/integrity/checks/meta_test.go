package checks

import (
	"context"
	"testing"
	"time"

	"rods-warden/core/store"
	"rods-warden/core/store/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDataTypeForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/zone/run1/reads.fastq", "fastq"},
		{"/zone/run1/reads.fastq.gz", "fastq"},
		{"/zone/run1/reads.FASTQ.GZ", "fastq"},
		{"/zone/run1/aln.cram", "cram"},
		{"/zone/run1/calls.vcf.bz2", "vcf"},
		{"/zone/run1/signal.pod5", "pod5"},
		{"/zone/run1/notes", ""},
		{"/zone/run1/archive.tar", ""},
		{"/zone/run1/table.tsv.zst", "tsv"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DataTypeForPath(tt.path))
		})
	}
}

func TestEnsureMatchingChecksumMetadata(t *testing.T) {
	ctx := context.Background()
	replicas := []store.Replica{
		{Checksum: "abc", Valid: true},
		{Checksum: "abc", Valid: true},
	}

	t.Run("Already Matching Is A No-Op", func(t *testing.T) {
		client := new(mocks.Client)
		o := obj("/zone/a.txt", replicas, []store.AVU{{Attr: AttrChecksum, Value: "abc"}})

		changed, err := EnsureMatchingChecksumMetadata(ctx, client, o)
		require.NoError(t, err)
		assert.False(t, changed)
		client.AssertExpectations(t)
	})

	t.Run("Replaces Stale Metadata", func(t *testing.T) {
		client := new(mocks.Client)
		stale := []store.AVU{
			{Attr: AttrChecksum, Value: "old"},
			{Attr: AttrChecksum, Value: "older"},
		}
		o := obj("/zone/a.txt", replicas, stale)

		client.On("RemoveMetadata", ctx, "/zone/a.txt", stale).Return(2, nil)
		client.On("AddMetadata", ctx, "/zone/a.txt",
			[]store.AVU{{Attr: AttrChecksum, Value: "abc"}}).Return(1, nil)

		changed, err := EnsureMatchingChecksumMetadata(ctx, client, o)
		require.NoError(t, err)
		assert.True(t, changed)
		client.AssertExpectations(t)
	})

	t.Run("Adds Missing Metadata", func(t *testing.T) {
		client := new(mocks.Client)
		o := obj("/zone/a.txt", replicas, nil)

		client.On("AddMetadata", ctx, "/zone/a.txt",
			[]store.AVU{{Attr: AttrChecksum, Value: "abc"}}).Return(1, nil)

		changed, err := EnsureMatchingChecksumMetadata(ctx, client, o)
		require.NoError(t, err)
		assert.True(t, changed)
		client.AssertExpectations(t)
	})

	t.Run("Refuses Divergent Replicas", func(t *testing.T) {
		client := new(mocks.Client)
		o := obj("/zone/a.txt", []store.Replica{
			{Checksum: "abc", Valid: true},
			{Checksum: "def", Valid: true},
		}, nil)

		changed, err := EnsureMatchingChecksumMetadata(ctx, client, o)
		assert.False(t, changed)

		var cerr *ChecksumError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "/zone/a.txt", cerr.Path)
		assert.Equal(t, []string{"abc", "def"}, cerr.Observed)
		client.AssertExpectations(t)
	})

	t.Run("Refuses Incomplete Checksums", func(t *testing.T) {
		client := new(mocks.Client)
		o := obj("/zone/a.txt", []store.Replica{
			{Checksum: "abc", Valid: true},
			{Checksum: "", Valid: true},
		}, nil)

		changed, err := EnsureMatchingChecksumMetadata(ctx, client, o)
		assert.False(t, changed)

		var cerr *ChecksumError
		require.ErrorAs(t, err, &cerr)
		client.AssertExpectations(t)
	})
}

func TestEnsureCommonMetadata(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	replicas := []store.Replica{
		{Checksum: "abc", Valid: true, Created: created.Add(time.Hour)},
		{Checksum: "abc", Valid: true, Created: created},
	}

	t.Run("Adds The Full Set", func(t *testing.T) {
		client := new(mocks.Client)
		o := obj("/zone/a.txt", replicas, nil)

		client.On("AddMetadata", ctx, "/zone/a.txt", []store.AVU{
			{Attr: AttrChecksum, Value: "abc"},
			{Attr: AttrCreated, Value: "2026-03-01T12:00:00Z"},
			{Attr: AttrCreator, Value: "dog"},
			{Attr: AttrType, Value: "txt"},
		}).Return(4, nil)

		changed, err := EnsureCommonMetadata(ctx, client, o, "dog")
		require.NoError(t, err)
		assert.True(t, changed)
		client.AssertExpectations(t)
	})

	t.Run("Placeholder Creator When None Supplied", func(t *testing.T) {
		client := new(mocks.Client)
		o := obj("/zone/a.dat", replicas, []store.AVU{{Attr: AttrChecksum, Value: "abc"}})

		client.On("AddMetadata", ctx, "/zone/a.dat", []store.AVU{
			{Attr: AttrCreated, Value: "2026-03-01T12:00:00Z"},
			{Attr: AttrCreator, Value: PlaceholderCreator},
		}).Return(2, nil)

		changed, err := EnsureCommonMetadata(ctx, client, o, "")
		require.NoError(t, err)
		assert.True(t, changed)
		client.AssertExpectations(t)
	})

	t.Run("Complete Object Is A No-Op", func(t *testing.T) {
		client := new(mocks.Client)
		o := obj("/zone/a.txt", replicas, []store.AVU{
			{Attr: AttrChecksum, Value: "abc"},
			{Attr: AttrCreated, Value: "2026-03-01T12:00:00Z"},
			{Attr: AttrCreator, Value: "dog"},
			{Attr: AttrType, Value: "txt"},
		})

		changed, err := EnsureCommonMetadata(ctx, client, o, "dog")
		require.NoError(t, err)
		assert.False(t, changed)
		client.AssertExpectations(t)
	})

	t.Run("Refuses A Checksum AVU From Divergent Replicas", func(t *testing.T) {
		client := new(mocks.Client)
		o := obj("/zone/a.txt", []store.Replica{
			{Checksum: "abc", Valid: true},
			{Checksum: "def", Valid: true},
		}, nil)

		changed, err := EnsureCommonMetadata(ctx, client, o, "dog")
		assert.False(t, changed)

		var cerr *ChecksumError
		require.ErrorAs(t, err, &cerr)
		client.AssertExpectations(t)
	})

	t.Run("Duplicate AVUs Already Present Report No Change", func(t *testing.T) {
		client := new(mocks.Client)
		o := obj("/zone/a.dat", replicas, []store.AVU{
			{Attr: AttrChecksum, Value: "abc"},
			{Attr: AttrCreated, Value: "2026-03-01T12:00:00Z"},
		})

		client.On("AddMetadata", ctx, "/zone/a.dat", mock.Anything).Return(0, nil)

		changed, err := EnsureCommonMetadata(ctx, client, o, "dog")
		require.NoError(t, err)
		assert.False(t, changed)
		client.AssertExpectations(t)
	})
}
