// Package domain defines the core business entities of the reading ledger:
// the card catalog, groups and their member rosters, the nested ledger of
// committed monthly readings, the card selection session, and the
// frequency-ranking aggregator. All ledger mutations are copy-on-write so a
// caller holding a prior value never observes a partially applied commit.
package domain
