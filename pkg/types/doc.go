// Package types defines the entity schema of the biobank store: the Entity
// interface and its Schema metadata, the record types (patients, tumors,
// biomodels, passages, trials and their satellites), the Session and Table
// interfaces consumed and exposed by the CRUD engine, and the closed error
// taxonomy surfaced to transports.
package types
