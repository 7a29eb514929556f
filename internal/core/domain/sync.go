package domain

// SyncReport summarises one flashcard synchronisation.
type SyncReport struct {
	// CollectionWords is the number of distinct words read from the
	// flashcard collection.
	CollectionWords int

	// Upserted is how many synced entries were inserted or refreshed.
	Upserted int

	// MarkedMissing is how many previously synced words vanished from the
	// collection and were marked unknown-status instead of deleted.
	MarkedMissing int
}
