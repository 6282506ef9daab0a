package integrity

import (
	"testing"

	"rods-warden/core/reconcile"

	"github.com/stretchr/testify/assert"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := reconcile.Config{
		Workers:               8,
		NumReplicas:           3,
		SingleReplicaPrefixes: "/zone/scratch, /zone/staging ,",
		Creator:               "dog",
	}

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, 8, opts.Workers)
	assert.Equal(t, 3, opts.NumReplicas)
	assert.Equal(t, []string{"/zone/scratch", "/zone/staging"}, opts.SingleReplicaPrefixes)
	assert.Equal(t, "dog", opts.Creator)
}

func TestExpectedReplicas(t *testing.T) {
	opts := Options{
		NumReplicas:           2,
		SingleReplicaPrefixes: []string{"/zone/scratch"},
	}

	assert.Equal(t, 2, opts.ExpectedReplicas("/zone/study/a.txt"))
	assert.Equal(t, 1, opts.ExpectedReplicas("/zone/scratch/a.txt"))

	// Zero configuration falls back to the replicated default.
	assert.Equal(t, 2, Options{}.ExpectedReplicas("/zone/a.txt"))
}
