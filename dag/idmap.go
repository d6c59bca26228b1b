package dag

// IdMap translates between 20-byte commit hashes and the 64-bit revision
// numbers assigned to them. It is the only collaborator allowed to perform
// that translation; everything else in this module goes through it (or
// through the caching wrapper in cache.go).
type IdMap interface {
	IdToHash(id RevId) (Hash20, error)
	HashToID(h Hash20) (RevId, error)
	IdsToHashes(ids []RevId) ([]Hash20, error)
}
