// Package harness runs scripted phone book sessions for tests.
//
// A scenario seeds a store, feeds input lines to an interactive session
// with a fixed clock, and then checks the transcript and the saved records.
// Transcripts can be compared against golden files.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	now: "2026-10-16T10:00:00Z"   # clock used for next birthday
//	backend: json                  # json (default) or sqlite
//	setup:                         # records stored before the session
//	  - "Ivan;Petrov;01.01.2000;89991234567"
//	input:                         # lines typed into the session
//	  - "4"
//	  - "quit"
//	assertions:
//	  - type: output_contains
//	    text: "First name: Ivan"
//	  - type: record_count
//	    count: 1
//	  - type: record_exists
//	    name: "Ivan;Petrov"
//	    expect: { phone: "89991234567" }
//
// Assertion types: output_contains, output_absent, record_count,
// record_exists, record_absent. Record assertions run against the store as
// reloaded after the session, so they also check persistence.
//
// # Golden Files
//
// RunWithGolden compares the session transcript with
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
