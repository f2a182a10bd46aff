// Package config loads multicast registry settings from YAML or JSON.
//
// A loaded Config validates its fields and converts to registry options:
//
//	cfg, err := config.FromFile("registry.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	reg := multicast.New[Listener](cfg.Options()...)
//
// Example registry.yaml:
//
//	failure_policy: continue
//	max_members: 64
//	metrics: true
//	tracing: false
package config
