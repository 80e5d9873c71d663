package badger

// Key prefix for ledger entries. Keeps room for other record kinds in the
// same database.
const entryPrefix = "pl:"

// entryKey builds the database key for a source document key.
func entryKey(key string) []byte {
	return []byte(entryPrefix + key)
}
