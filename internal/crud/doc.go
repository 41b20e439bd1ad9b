// Package crud implements the five entity-agnostic operations of the biobank
// store (list, get, create, update, delete) over any registered entity type.
//
// Every operation runs on a caller-supplied types.Session. Each write runs in
// exactly one transaction that is committed on success and rolled back before
// any error is returned. Every error returned is a *types.Error.
package crud
