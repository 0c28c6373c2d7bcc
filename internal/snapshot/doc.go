// Package snapshot reads and writes document graphs as YAML, JSON or TOML.
//
// A snapshot keeps the difference between absent, null and empty values, so a
// document with defects decodes with those defects intact:
//
//	header:
//	  character_set:
//	    name: ANSEL
//	    custom_tags: null   # unset collection, reported by validation
//	  copyright_data: []    # empty but present
//	  submitter: "@SUBM1@"
//	submitters:
//	  - xref: "@SUBM1@"
//	    name: Jane Doe
//	trailer: {}
//
// TOML has no null, so TOML snapshots can only express absent and empty.
// Snapshots are written as YAML or JSON.
package snapshot
