package badger

// Key prefix for stored business-record documents.
const documentPrefix = "bizdoc"

// makeDocumentKey generates a key for a document by its source ID.
func makeDocumentKey(id string) []byte {
	return []byte(documentPrefix + ":" + id)
}
