package gateway

import "strings"

// Config holds configuration for the grid's data plane.
type Config struct {
	// Endpoint is the URL of the object storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Region is the location of the resource buckets (e.g. us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Resources is a comma-separated list of storage resource names, one
	// bucket per resource. Replicas are placed on resources in this order.
	Resources string `mapstructure:"resources" default:"replica-1,replica-2"`
}

// Buckets returns the resource bucket names in placement order.
func (c Config) Buckets() []string {
	var buckets []string
	for _, r := range strings.Split(c.Resources, ",") {
		if r = strings.TrimSpace(r); r != "" {
			buckets = append(buckets, r)
		}
	}
	return buckets
}
