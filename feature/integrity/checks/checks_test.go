package checks

import (
	"testing"

	"rods-warden/core/store"

	"github.com/stretchr/testify/assert"
)

func obj(path string, replicas []store.Replica, metadata []store.AVU) *store.Object {
	return &store.Object{Path: path, Replicas: replicas, Metadata: metadata}
}

func TestHasCompleteChecksums(t *testing.T) {
	tests := []struct {
		name     string
		replicas []store.Replica
		want     bool
	}{
		{
			name: "All Valid Replicas Checksummed",
			replicas: []store.Replica{
				{Checksum: "abc", Valid: true},
				{Checksum: "abc", Valid: true},
			},
			want: true,
		},
		{
			name: "Valid Replica Missing Checksum",
			replicas: []store.Replica{
				{Checksum: "abc", Valid: true},
				{Checksum: "", Valid: true},
			},
			want: false,
		},
		{
			name: "Invalid Replicas Ignored",
			replicas: []store.Replica{
				{Checksum: "abc", Valid: true},
				{Checksum: "", Valid: false},
			},
			want: true,
		},
		{
			name: "No Replicas",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasCompleteChecksums(obj("/zone/a.txt", tt.replicas, nil)))
		})
	}
}

func TestHasMatchingChecksums(t *testing.T) {
	tests := []struct {
		name     string
		replicas []store.Replica
		want     bool
	}{
		{
			name: "Agreeing Checksums",
			replicas: []store.Replica{
				{Checksum: "abc", Valid: true},
				{Checksum: "abc", Valid: true},
			},
			want: true,
		},
		{
			name: "Divergent Checksums",
			replicas: []store.Replica{
				{Checksum: "abc", Valid: true},
				{Checksum: "def", Valid: true},
			},
			want: false,
		},
		{
			name: "Single Valid Replica Is Vacuously Matching",
			replicas: []store.Replica{
				{Checksum: "abc", Valid: true},
				{Checksum: "def", Valid: false},
			},
			want: true,
		},
		{
			name: "No Valid Replicas",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasMatchingChecksums(obj("/zone/a.txt", tt.replicas, nil)))
		})
	}
}

func TestHasMatchingChecksumMetadata(t *testing.T) {
	replicas := []store.Replica{
		{Checksum: "abc", Valid: true},
		{Checksum: "abc", Valid: true},
	}

	tests := []struct {
		name     string
		replicas []store.Replica
		metadata []store.AVU
		want     bool
	}{
		{
			name:     "Single AVU Matching Replicas",
			replicas: replicas,
			metadata: []store.AVU{{Attr: AttrChecksum, Value: "abc"}},
			want:     true,
		},
		{
			name:     "No Checksum AVU",
			replicas: replicas,
			want:     false,
		},
		{
			name:     "Stale Extra AVU",
			replicas: replicas,
			metadata: []store.AVU{
				{Attr: AttrChecksum, Value: "abc"},
				{Attr: AttrChecksum, Value: "old"},
			},
			want: false,
		},
		{
			name:     "AVU Disagrees With Replicas",
			replicas: replicas,
			metadata: []store.AVU{{Attr: AttrChecksum, Value: "def"}},
			want:     false,
		},
		{
			name: "Divergent Replicas Never Match",
			replicas: []store.Replica{
				{Checksum: "abc", Valid: true},
				{Checksum: "def", Valid: true},
			},
			metadata: []store.AVU{{Attr: AttrChecksum, Value: "abc"}},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasMatchingChecksumMetadata(obj("/zone/a.txt", tt.replicas, tt.metadata)))
		})
	}
}

func TestTrimmableReplicas(t *testing.T) {
	t.Run("Excess Valid And All Invalid", func(t *testing.T) {
		o := obj("/zone/a.txt", []store.Replica{
			{Number: 0, Valid: true},
			{Number: 1, Valid: true},
			{Number: 2, Valid: true},
			{Number: 3, Valid: false},
		}, nil)

		valid, invalid := TrimmableReplicas(o, 2)
		assert.Len(t, valid, 1)
		assert.Equal(t, 2, valid[0].Number)
		assert.Len(t, invalid, 1)
		assert.Equal(t, 3, invalid[0].Number)
		assert.True(t, HasTrimmableReplicas(o, 2))
	})

	t.Run("Complete Object Has Nothing To Trim", func(t *testing.T) {
		o := obj("/zone/a.txt", []store.Replica{
			{Number: 0, Valid: true},
			{Number: 1, Valid: true},
		}, nil)

		valid, invalid := TrimmableReplicas(o, 2)
		assert.Empty(t, valid)
		assert.Empty(t, invalid)
		assert.False(t, HasTrimmableReplicas(o, 2))
		assert.True(t, HasCompleteReplicas(o, 2))
	})

	t.Run("Short Object Has Nothing To Trim But Is Incomplete", func(t *testing.T) {
		o := obj("/zone/a.txt", []store.Replica{{Number: 0, Valid: true}}, nil)

		assert.False(t, HasTrimmableReplicas(o, 2))
		assert.False(t, HasCompleteReplicas(o, 2))
	})
}

func TestHasCommonMetadata(t *testing.T) {
	full := []store.AVU{
		{Attr: AttrChecksum, Value: "abc"},
		{Attr: AttrCreated, Value: "2026-01-01T00:00:00Z"},
		{Attr: AttrCreator, Value: "dog"},
		{Attr: AttrType, Value: "txt"},
	}

	t.Run("Complete Set", func(t *testing.T) {
		assert.True(t, HasCommonMetadata(obj("/zone/a.txt", nil, full)))
	})

	t.Run("Missing Creator", func(t *testing.T) {
		assert.False(t, HasCommonMetadata(obj("/zone/a.txt", nil, full[:2])))
	})

	t.Run("Type Not Required For Unrecognized Suffix", func(t *testing.T) {
		assert.True(t, HasCommonMetadata(obj("/zone/a.dat", nil, full[:3])))
	})

	t.Run("Type Required For Recognized Suffix", func(t *testing.T) {
		assert.False(t, HasCommonMetadata(obj("/zone/a.txt", nil, full[:3])))
	})
}
