package dag

import "errors"

// ErrNotFound is returned by IdMap lookups that miss. revset absorbs this
// locally everywhere it looks up a hash/id (NameSet.Contains, toNameSet's
// batch translation, nameRevIterator): a miss means "this revision isn't
// resolvable right now," not a programming error, so callers see false or
// a silently narrowed set rather than this error type.
var ErrNotFound = errors.New("dag: id/hash not found")
