// Package model defines the in-memory genealogical document graph checked by
// the validate package.
//
// The graph distinguishes absent values from empty ones. A nil pointer or a nil
// slice means the value was never set; an empty, non-nil slice means it was set
// and holds nothing. Validation rules treat these two states differently, so
// callers building a graph by hand should prefer the New* constructors, which
// initialize every collection to its empty state.
//
//	doc := model.NewGedcom()
//	s := model.NewSubmitter("@SUBM1@", "Jane Doe")
//	doc.AddSubmitter(s)
//	doc.Header.Submitter = s
package model
