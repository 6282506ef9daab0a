package reconcile

// Outcome is the per-item result of a check or repair. It is created once
// per item and never mutated afterwards.
type Outcome struct {
	// Success reports that the item was found correct, or was repaired.
	Success bool
	// Repaired reports that a repair was performed on the item.
	Repaired bool
}

// Summary aggregates per-item outcomes for a whole run. Counts are exact:
// every input line contributes exactly one outcome.
type Summary struct {
	// Checked is the number of input paths processed.
	Checked int `json:"checked"`
	// Succeeded is the number of paths found correct or repaired.
	Succeeded int `json:"succeeded"`
	// Repaired is the number of paths on which a repair was performed.
	Repaired int `json:"repaired"`
	// Errors is the number of paths that were incorrect, unrepairable, or
	// failed with an error.
	Errors int `json:"errors"`
}

// Config holds configuration for reconciliation runs.
type Config struct {
	// Workers is the number of concurrent workers.
	Workers int `mapstructure:"workers" default:"4"`
	// Clients is the number of pooled grid clients shared by the workers.
	Clients int `mapstructure:"clients" default:"4"`
	// NumReplicas is the replica count expected for objects outside any
	// single-replica subtree.
	NumReplicas int `mapstructure:"num_replicas" default:"2"`
	// SingleReplicaPrefixes is a comma-separated list of path prefixes under
	// which objects are expected to hold exactly one replica.
	SingleReplicaPrefixes string `mapstructure:"single_replica_prefixes" default:""`
	// Creator is the data creator identity recorded by metadata repairs.
	Creator string `mapstructure:"creator" default:""`
}
