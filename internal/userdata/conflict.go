package userdata

// ResolveConflict picks between the remote document and local unsynced
// changes. The local document wins only when it was modified strictly
// later; on a tie or when timestamps are missing the remote copy is kept.
// There is no field-level merge.
func ResolveConflict(remote, local *Document) *Document {
	if remote == nil {
		return local
	}
	if local == nil {
		return remote
	}
	if local.LastModified.After(remote.LastModified) {
		return local
	}
	return remote
}
