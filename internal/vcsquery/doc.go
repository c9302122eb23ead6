// Package vcsquery answers two questions about the host repository: which
// tracked paths exist (the index listing) and which key, if any, each
// path is bound to (the filter attribute).
//
// Index listing and working-tree status are read through go-git/v5,
// reusing its plumbing/format/index decoder instead of hand-rolling one.
//
// .gitattributes lines are parsed with this package's own small
// filter-clause scanner, but the glob portion of each line is matched
// with go-git's plumbing/format/gitignore Pattern, since .gitignore and
// .gitattributes share glob syntax and go-git already ships a correct
// implementation of it.
//
// Individual and batch attribute resolution (`check-attr`, `check-attr
// --stdin -z`) require the real git binary — go-git does not implement
// gitattributes resolution — and run through internal/procchannel.
package vcsquery
