// Package ballotengine implements the poll store, ballot processor and tally
// reads inside the election-core context.
//
// The module owns poll lifecycle (create, time-window activation, lazy
// expiry), one-voter-one-vote enforcement and result aggregation, and records
// every successful mutation in an append-only audit log relayed by workers.
// Business rules live in the application/domain layers; infrastructure stays
// behind ports and adapters.
package ballotengine
