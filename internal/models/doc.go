// Package models defines the core domain models for splitledger.
//
// # Aggregate
//
// Group is the aggregate root. It owns:
//   - Member: membership records, soft-deleted on removal
//   - Expense: the append-mostly ledger, with splits per participant
//   - Debt: simplified transfers derived from the ledger, per currency
//   - Comment: the group's discussion thread
//
// All invariants (split conservation, capacity, debts blocking removal and
// deletion, currency policy) are enforced by Group methods, never by the
// transport layer. Callers load a group, call methods, and persist the whole
// document.
//
// # Identity
//
// Members, payers and split participants are referenced by user id, never by
// slice position, so deactivating a member leaves history intact. Display
// names are copied in at write time.
//
// # Errors
//
// Methods return errors wrapping the sentinels in errors.go; KindOf maps them
// onto not-found, conflict, validation, precondition and permission kinds.
package models
