// Package manifest defines the declaration document for a component's
// conditional configuration and loads it from YAML or JSON.
//
// A manifest carries the whole declaration surface: build facts,
// ordered alias declarations, and fallback-terminated switches. The gen
// package resolves a validated manifest against a build environment and
// renders the result.
//
// Example manifest:
//
//	package: transport
//	build:
//	  features: [std, log]
//	aliases:
//	  - name: std
//	    pub: true
//	    doc: The standard library is available.
//	    cond: cfg(feature=std)
//	  - name: verbose
//	    cond: all(std, cfg(feature=log))
//	switches:
//	  - name: logging
//	    arms:
//	      - cond: verbose
//	        block: |
//	          func logf(format string, args ...any) { ... }
//	      - default: true
//	        block: |
//	          func logf(string, ...any) {}
package manifest
